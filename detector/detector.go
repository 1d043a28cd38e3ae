// Package detector locates QR finder patterns in a binarized image.
package detector

import (
	"math"
	"sort"

	qr "github.com/avil13/qr"
)

// clusterRadius is the maximum distance in pixels between a candidate center
// and a group's first member for the candidate to join the group.
const clusterRadius = 20.0

// FinderPattern is a detected corner marker: its estimated center and module
// width in pixels. Immutable once created.
type FinderPattern struct {
	Center     qr.Point
	ModuleSize float64
}

// Detector scans a luminance image for finder patterns using its active
// threshold.
type Detector struct {
	image *qr.LuminanceImage
}

// NewDetector creates a Detector for the given image.
func NewDetector(image *qr.LuminanceImage) *Detector {
	return &Detector{image: image}
}

// runState tracks the 5-slot run-length state machine over one scan line.
// Indices 0..4 hold the run lengths of the black-white-black-white-black
// sequence whose 1:1:3:1:1 ratio characterizes a finder pattern center line.
// A fresh value is used per row; no state leaks across rows.
type runState struct {
	runs    [5]int
	current int
}

// candidate is a single row detection before clustering.
type candidate struct {
	center qr.Point
	size   float64
}

// Find scans every image row and returns up to three finder patterns,
// ordered by detection confidence (most-clustered first).
func (d *Detector) Find() []FinderPattern {
	height := d.image.Height()
	width := d.image.Width()

	var candidates []candidate
	for y := 0; y < height; y++ {
		state := runState{}
		for x := 0; x < width; x++ {
			if d.image.IsBlack(x, y) {
				if state.current&1 == 1 { // was counting white
					state.current++
				}
				state.runs[state.current]++
			} else {
				if state.current&1 == 1 { // counting white
					state.runs[state.current]++
				} else if state.current == 4 {
					// Completed all five runs.
					if c, ok := d.checkCandidate(state.runs, x, y); ok {
						candidates = append(candidates, c)
					}
					// Slide the window: the trailing B-W-B may begin the
					// next pattern.
					state.runs = [5]int{state.runs[2], state.runs[3], state.runs[4], 1, 0}
					state.current = 3
				} else {
					state.current++
					state.runs[state.current]++
				}
			}
		}
		// A row ending mid-pattern still gets checked, with the row end as
		// the virtual run boundary.
		if state.current == 4 {
			if c, ok := d.checkCandidate(state.runs, width, y); ok {
				candidates = append(candidates, c)
			}
		}
	}

	return clusterCandidates(candidates)
}

// checkCandidate applies the horizontal ratio test to the completed runs
// ending at x on row y and, if it passes, confirms the candidate along the
// vertical axis. x is the position just past the last black run.
func (d *Detector) checkCandidate(runs [5]int, x, y int) (candidate, bool) {
	size, ok := checkRatio(runs)
	if !ok {
		return candidate{}, false
	}
	centerX := float64(x) - float64(runs[3]+runs[4]) - float64(runs[2])/2.0
	centerY := d.crossCheckVertical(int(centerX), y)
	if math.IsNaN(centerY) {
		return candidate{}, false
	}
	return candidate{center: qr.Point{X: centerX, Y: centerY}, size: size}, true
}

// checkRatio verifies that five run lengths approximate the 1:1:3:1:1 finder
// pattern ratio. Each run must be within 0.7 module widths of its expected
// length; the 3-module center run gets triple that tolerance. Returns the
// estimated module size on success.
func checkRatio(runs [5]int) (float64, bool) {
	total := 0
	for _, count := range runs {
		if count == 0 {
			return 0, false
		}
		total += count
	}
	if total < 7 {
		return 0, false
	}
	moduleSize := float64(total) / 7.0
	maxVariance := 0.7 * moduleSize
	ok := math.Abs(moduleSize-float64(runs[0])) < maxVariance &&
		math.Abs(moduleSize-float64(runs[1])) < maxVariance &&
		math.Abs(3*moduleSize-float64(runs[2])) < 3*maxVariance &&
		math.Abs(moduleSize-float64(runs[3])) < maxVariance &&
		math.Abs(moduleSize-float64(runs[4])) < maxVariance
	return moduleSize, ok
}

// crossCheckVertical walks up and down from (centerX, startY), rebuilding the
// five-run sequence along the vertical axis. It returns the refined vertical
// center, or NaN when the vertical ratio test fails. Runs that hit the image
// edge simply end there; the ratio test decides their fate.
func (d *Detector) crossCheckVertical(centerX, startY int) float64 {
	maxY := d.image.Height()
	runs := [5]int{}

	y := startY
	for y >= 0 && d.image.IsBlack(centerX, y) {
		runs[2]++
		y--
	}
	for y >= 0 && !d.image.IsBlack(centerX, y) {
		runs[1]++
		y--
	}
	for y >= 0 && d.image.IsBlack(centerX, y) {
		runs[0]++
		y--
	}

	y = startY + 1
	for y < maxY && d.image.IsBlack(centerX, y) {
		runs[2]++
		y++
	}
	for y < maxY && !d.image.IsBlack(centerX, y) {
		runs[3]++
		y++
	}
	for y < maxY && d.image.IsBlack(centerX, y) {
		runs[4]++
		y++
	}

	if _, ok := checkRatio(runs); !ok {
		return math.NaN()
	}
	return float64(y-runs[4]-runs[3]) - float64(runs[2])/2.0
}

// clusterCandidates groups row detections whose centers lie within
// clusterRadius of a group's first member, averages each group into one
// pattern, and returns the top three groups by member count. The
// first-member linkage is order-dependent on purpose: the earliest detection
// anchors its group.
func clusterCandidates(candidates []candidate) []FinderPattern {
	var groups [][]candidate
	for _, c := range candidates {
		placed := false
		for i := range groups {
			if qr.Distance(c.center, groups[i][0].center) <= clusterRadius {
				groups[i] = append(groups[i], c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []candidate{c})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})
	if len(groups) > 3 {
		groups = groups[:3]
	}

	patterns := make([]FinderPattern, len(groups))
	for i, group := range groups {
		var sumX, sumY, sumSize float64
		for _, c := range group {
			sumX += c.center.X
			sumY += c.center.Y
			sumSize += c.size
		}
		n := float64(len(group))
		patterns[i] = FinderPattern{
			Center:     qr.Point{X: sumX / n, Y: sumY / n},
			ModuleSize: sumSize / n,
		}
	}
	return patterns
}
