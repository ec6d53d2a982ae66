package units

import "math"

// ============================================================
// Unit Conversion
// ============================================================

// MMPerFoot is the scale between host length (decimal feet) and display
// length (millimetres).
const MMPerFoot = 304.8

const degPerRad = 180 / math.Pi

// LengthTolerance is the distance in host units below which two points or
// parameters are treated as coincident (1 mm).
var LengthTolerance = 1 / MMPerFoot

// CosTolerance is the cosine above which two unit vectors are treated as
// pointing the same way (1 degree).
var CosTolerance = math.Cos(1 * math.Pi / 180)

func ToDisplayLength(hostLen float64) float64 { return hostLen * MMPerFoot }
func ToHostLength(mm float64) float64         { return mm / MMPerFoot }

func ToDisplayAngle(rad float64) float64 { return rad * degPerRad }
func ToHostAngle(deg float64) float64    { return deg / degPerRad }

func ToDisplayArea(hostArea float64) float64 { return hostArea * MMPerFoot * MMPerFoot }
func ToHostArea(mm2 float64) float64         { return mm2 / MMPerFoot / MMPerFoot }

func ToDisplayVolume(hostVol float64) float64 { return hostVol * MMPerFoot * MMPerFoot * MMPerFoot }
func ToHostVolume(mm3 float64) float64        { return mm3 / MMPerFoot / MMPerFoot / MMPerFoot }

// LengthToRounded converts a host length to display millimetres rounded to
// the nearest multiple of base. Halves round to even.
func LengthToRounded(hostLen float64, base int) int {
	if base == 0 {
		base = 1
	}
	return int(math.RoundToEven(hostLen*MMPerFoot/float64(base))) * base
}

// AngleToRounded converts radians to whole degrees rounded to the nearest
// multiple of base, reduced modulo 360.
func AngleToRounded(rad float64, base int) int {
	if base == 0 {
		base = 1
	}
	return int(math.RoundToEven(rad*degPerRad/float64(base))) * base % 360
}

// ToRadian converts degrees to radians.
func ToRadian(deg float64) float64 { return deg * math.Pi / 180 }
