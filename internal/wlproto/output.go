package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wloutput"
)

// wl_output.subpixel/transform "unknown" values, sent as part of the
// geometry event's fixed trailing fields.
const (
	outputSubpixelUnknown  int32 = 0
	outputTransformNormal  int32 = 0
	outputModeCurrent      uint32 = 0x1
)

// Output is the wl_output resource bound per client.
type Output struct {
	resourceBase
}

// BindOutput sends the geometry/mode/scale/done burst, grounded on
// wayland-output.c advertising a single mode and a "done" terminator.
func BindOutput(backend func() wloutput.Backend) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		o := &Output{resourceBase: resourceBase{client: client, id: objectID, version: version}}
		b := backend()
		sendLog("wl_output", "geometry", o.id, b.X, b.Y, b.WidthMM, b.HeightMM, outputSubpixelUnknown, "", "", outputTransformNormal)
		sendLog("wl_output", "mode", o.id, outputModeCurrent, b.ModeWidth, b.ModeHeight, b.RefreshMHz)
		if version >= 2 {
			sendLog("wl_output", "scale", o.id, b.Scale)
		}
		sendLog("wl_output", "done", o.id)
	}
}
