package detector

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// Params tunes the cascade run.
type Params struct {
	MinSize      int
	MaxSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	MinQuality   float32
}

// DefaultParams matches the webcam defaults of the facefinder cascade.
var DefaultParams = Params{
	MinSize:      100,
	MaxSize:      1200,
	ShiftFactor:  0.1,
	ScaleFactor:  1.1,
	IoUThreshold: 0.1,
	MinQuality:   5,
}

// Face is a detected face centre in image pixel coordinates.
type Face struct {
	X, Y  int
	Scale int
	Q     float32
}

// Detector finds faces in webcam frames so balls can be dropped on them.
type Detector struct {
	classifier *pigo.Pigo
	params     Params
}

// Load reads and unpacks the facefinder cascade file at path.
func Load(path string, p Params) (*Detector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the facefinder cascade file: %w", err)
	}
	return New(cascade, p)
}

// New unpacks the binary facefinder cascade.
func New(cascade []byte, p Params) (*Detector, error) {
	if len(cascade) == 0 {
		return nil, errors.New("empty facefinder cascade")
	}
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the facefinder cascade file: %w", err)
	}
	return &Detector{classifier: classifier, params: p}, nil
}

// Detect runs the cluster detection over img and returns the faces above the quality threshold.
func (d *Detector) Detect(img image.Image) []Face {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     d.params.MaxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(toNRGBA(img)),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.params.IoUThreshold)

	return filter(dets, d.params.MinQuality)
}

// toNRGBA returns img as an NRGBA image anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func filter(dets []pigo.Detection, minQ float32) []Face {
	faces := make([]Face, 0, len(dets))
	for _, det := range dets {
		if det.Q < minQ {
			continue
		}
		faces = append(faces, Face{X: det.Col, Y: det.Row, Scale: det.Scale, Q: det.Q})
	}
	return faces
}

// ToWorld maps a face centre from a frame of imgW x imgH pixels onto the simulation world.
// Webcam frames are usually mirrored, in which case the horizontal axis is flipped.
func ToWorld(f Face, imgW, imgH int, worldW, worldH float64, mirror bool) (x, y float64) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	x = float64(f.X) / float64(imgW) * worldW
	y = float64(f.Y) / float64(imgH) * worldH
	if mirror {
		x = worldW - x
	}
	return x, y
}
