package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

const namespace = "http://www.w3.org/2000/svg"

var errNoCanvas = errors.New("svg canvas not created")

type svgRoot struct {
	XMLName  xml.Name `xml:"svg"`
	Xmlns    string   `xml:"xmlns,attr"`
	Width    float64  `xml:"width,attr"`
	Height   float64  `xml:"height,attr"`
	Elements []any
}

type svgLine struct {
	XMLName     xml.Name `xml:"line"`
	X1          float64  `xml:"x1,attr"`
	Y1          float64  `xml:"y1,attr"`
	X2          float64  `xml:"x2,attr"`
	Y2          float64  `xml:"y2,attr"`
	StrokeWidth float64  `xml:"stroke-width,attr"`
	Stroke      string   `xml:"stroke,attr"`
	Style       string   `xml:"style,attr,omitempty"`
}

type svgCircle struct {
	XMLName xml.Name `xml:"circle"`
	CX      float64  `xml:"cx,attr"`
	CY      float64  `xml:"cy,attr"`
	R       float64  `xml:"r,attr"`
}

type svgPolygon struct {
	XMLName xml.Name `xml:"polygon"`
	Points  string   `xml:"points,attr"`
	Stroke  string   `xml:"stroke,attr"`
	Fill    string   `xml:"fill,attr"`
}

// Document is a Backend that accumulates shapes into an SVG document
type Document struct {
	root *svgRoot
}

// NewDocument creates an empty document; CreateCanvas must be called before drawing
func NewDocument() *Document {
	return &Document{}
}

// CreateCanvas starts a new <svg> element of the given size, discarding earlier shapes
func (d *Document) CreateCanvas(size geometry.Size) {
	d.root = &svgRoot{Xmlns: namespace, Width: size.W, Height: size.H}
}

// DrawLine appends an axis line
func (d *Document) DrawLine(from, to geometry.Point, dashed bool) {
	line := svgLine{
		X1:          from.X,
		Y1:          from.Y,
		X2:          to.X,
		Y2:          to.Y,
		StrokeWidth: geometry.AxisWidth,
		Stroke:      geometry.AxisColor,
	}
	if dashed {
		line.Style = "stroke-dasharray: " + geometry.DashPattern
	}
	d.append(line)
}

// DrawCircle appends a filled dot
func (d *Document) DrawCircle(center geometry.Point, radius float64) {
	d.append(svgCircle{CX: center.X, CY: center.Y, R: radius})
}

// DrawPolygon appends a closed shape filled and stroked in one colour
func (d *Document) DrawPolygon(points []geometry.Point, fill string) {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, formatFloat(p.X)+","+formatFloat(p.Y))
	}
	d.append(svgPolygon{Points: strings.Join(coords, " "), Stroke: fill, Fill: fill})
}

func (d *Document) append(el any) {
	if d.root == nil {
		return
	}
	d.root.Elements = append(d.root.Elements, el)
}

// Bytes serialises the document
func (d *Document) Bytes() ([]byte, error) {
	if d.root == nil {
		return nil, errNoCanvas
	}
	out, err := xml.Marshal(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode svg: %w", err)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
