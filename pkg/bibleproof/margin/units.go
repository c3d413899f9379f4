package margin

// PointsPerInch is the PDF user-space unit: 1 inch = 72 points.
const PointsPerInch = 72

// InchesToPoints converts inches to PDF points.
func InchesToPoints(in float64) float64 {
	return in * PointsPerInch
}
