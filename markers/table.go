package markers

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	colorful "github.com/lucasb-eyer/go-colorful"

	"go.viam.com/markerviz/spatialmath"
	"go.viam.com/markerviz/utils"
)

// Hex formats the color as "#rrggbb" followed by its alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("%s@%.2f", colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), c.A)
}

// Table prints out a table of every primitive in draw order, with columns of batch, index,
// position, yaw and a batch specific detail.
func (b *Batches) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Batch", "#", "Position", "Yaw", "Detail"})
	for i, p := range b.Outlines.Polygons {
		t.AppendRow(table.Row{
			BatchOutlines, i, formatPoint(p.Pose.Point), formatYaw(p.Pose),
			fmt.Sprintf("%d points, %s", len(p.Points), p.Color.Hex()),
		})
	}
	for i, m := range b.Models.Instances {
		t.AppendRow(table.Row{
			BatchModels, i, formatPoint(m.Pose.Point), formatYaw(m.Pose),
			fmt.Sprintf("%s, alpha %.2f", m.ModelKey, m.Alpha),
		})
	}
	for i, a := range b.Arrows.Arrows {
		t.AppendRow(table.Row{
			BatchArrows, i, formatPoint(a.Pose.Point), formatYaw(a.Pose),
			fmt.Sprintf("%s -> %s, %s", formatPoint(a.Points[0]), formatPoint(a.Points[1]), a.Color.Hex()),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "layer", b.Outlines.LayerIndex})
	return t.Render()
}

func formatPoint(p r3.Vector) string {
	return fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", p.X, p.Y, p.Z)
}

func formatYaw(p spatialmath.Pose) string {
	q, err := spatialmath.NormalizeQuaternion(p.Orientation)
	if err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%.1f", utils.RadToDeg(spatialmath.Yaw(q)))
}
