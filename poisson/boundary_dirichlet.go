package poisson

import "github.com/MeKo-Tech/specfft/grid"

// ApplyDirichletRHS adds inhomogeneous Dirichlet boundary contributions to rhs.
// The rhs slice is modified in-place and uses row-major ordering.
//
// The solver's cell-centered grid places node 0 a half spacing inside the
// domain face, so a boundary value g is enforced by reflecting the ghost
// cell across the face: ghost = 2g - u[0]. Substituting into the boundary
// stencil row (2u[0]-ghost-u[1])/h^2 = 3u[0]/h^2-u[1]/h^2-2g/h^2 shows the
// homogeneous operator (ghost=-u[0]) differs from the true one by 2g/h^2,
// so that term is added back to rhs before the homogeneous solve.
func ApplyDirichletRHS(rhs []float64, shape grid.Shape, h [3]float64, bc BoundaryConditions) error {
	if rhs == nil {
		return ErrNilBuffer
	}

	expected := shape.Size()
	if len(rhs) != expected {
		return &SizeError{
			Expected: expected,
			Got:      len(rhs),
			Context:  "ApplyDirichletRHS",
		}
	}

	dim := shape.Dim()
	nx, ny, nz := shape[0], shape[1], shape[2]
	plane := ny * nz

	for _, data := range bc {
		if data.Type != Dirichlet {
			return &ValidationError{
				Field:   "Type",
				Message: "only Dirichlet boundary data is supported",
			}
		}

		switch data.Face {
		case XLow, XHigh:
			if dim < 1 {
				return &ValidationError{Field: "Face", Message: "X face not valid for this dimension"}
			}
			expectedFace := ny * nz
			if len(data.Values) != expectedFace {
				return &SizeError{
					Expected: expectedFace,
					Got:      len(data.Values),
					Context:  "X face values",
				}
			}

			corrX := 2.0 / (h[0] * h[0])
			base := 0
			if data.Face == XHigh {
				base = (nx - 1) * plane
			}
			for j := 0; j < ny; j++ {
				row := base + j*nz
				valRow := j * nz
				for k := 0; k < nz; k++ {
					rhs[row+k] += data.Values[valRow+k] * corrX
				}
			}

		case YLow, YHigh:
			if dim < 2 {
				return &ValidationError{Field: "Face", Message: "Y face not valid for this dimension"}
			}
			expectedFace := nx * nz
			if len(data.Values) != expectedFace {
				return &SizeError{
					Expected: expectedFace,
					Got:      len(data.Values),
					Context:  "Y face values",
				}
			}

			corrY := 2.0 / (h[1] * h[1])
			j := 0
			if data.Face == YHigh {
				j = ny - 1
			}
			for i := 0; i < nx; i++ {
				base := i*plane + j*nz
				valRow := i * nz
				for k := 0; k < nz; k++ {
					rhs[base+k] += data.Values[valRow+k] * corrY
				}
			}

		case ZLow, ZHigh:
			if dim < 3 {
				return &ValidationError{Field: "Face", Message: "Z face not valid for this dimension"}
			}
			expectedFace := nx * ny
			if len(data.Values) != expectedFace {
				return &SizeError{
					Expected: expectedFace,
					Got:      len(data.Values),
					Context:  "Z face values",
				}
			}

			corrZ := 2.0 / (h[2] * h[2])
			k := 0
			if data.Face == ZHigh {
				k = nz - 1
			}
			for i := 0; i < nx; i++ {
				base := i * plane
				valRow := i * ny
				for j := 0; j < ny; j++ {
					rhs[base+j*nz+k] += data.Values[valRow+j] * corrZ
				}
			}

		default:
			return &ValidationError{Field: "Face", Message: "unknown boundary face"}
		}
	}

	return nil
}
