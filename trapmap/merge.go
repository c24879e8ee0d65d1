package trapmap

import "github.com/trapplan/motionplan/geom"

// slopeTolerance bounds how close two chord slopes must be to call them the
// same line when considering a merge. It stands in for the original
// implementation's default floating-point comparison tolerance and is
// deliberately tighter than EpsilonMerge, which only governs how close two
// walls must sit to be treated as the same wall.
const slopeTolerance = 1e-6

// TryMerge attempts to merge left and right into a single trapezoid,
// returning nil if they do not qualify. Two trapezoids merge when: they
// share their boundary originator (the vertex whose insertion produced the
// wall between them), their facing walls sit within EpsilonMerge of each
// other, their top and bottom chords continue at the same slope across the
// wall, and the wall's two corners fall on the same side of the shared
// originator (so the merge does not straddle a cut made by a different
// edge).
func TryMerge(left, right *Trapezoid) *Trapezoid {
	if len(left.Originators) == 0 || len(right.Originators) == 0 {
		return nil
	}
	origin := left.Originators[len(left.Originators)-1]
	if origin != right.Originators[0] {
		return nil
	}

	leftWallTop, leftWallBottom := left.Top.Right, left.Bottom.Right
	rightWallTop, rightWallBottom := right.Top.Left, right.Bottom.Left
	if !leftWallTop.EqualEps(rightWallTop, geom.EpsilonMerge) ||
		!leftWallBottom.EqualEps(rightWallBottom, geom.EpsilonMerge) {
		return nil
	}

	if !slopesAgree(left.Top, right.Top) || !slopesAgree(left.Bottom, right.Bottom) {
		return nil
	}

	sameSide := (leftWallTop.Y <= origin.Y && leftWallBottom.Y <= origin.Y) ||
		(leftWallTop.Y >= origin.Y && leftWallBottom.Y >= origin.Y)
	if !sameSide {
		return nil
	}

	verts := []geom.Point{left.Top.Left, right.Top.Right}
	if right.Bottom.Right != right.Top.Right {
		verts = append(verts, right.Bottom.Right)
	}
	if left.Bottom.Left != left.Top.Left {
		verts = append(verts, left.Bottom.Left)
	}

	originators := append(append([]geom.Point{}, left.Originators[:len(left.Originators)-1]...), right.Originators[1:]...)
	return newTrapezoid(verts, originators)
}

func slopesAgree(a, b geom.Segment) bool {
	if a.IsVertical() || b.IsVertical() {
		return a.IsVertical() && b.IsVertical()
	}
	diff := a.Slope() - b.Slope()
	if diff < 0 {
		diff = -diff
	}
	return diff <= slopeTolerance
}
