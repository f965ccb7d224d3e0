package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

var glErrorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "INVALID_ENUM",
	gl.INVALID_VALUE:                 "INVALID_VALUE",
	gl.INVALID_OPERATION:             "INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "OUT_OF_MEMORY",
}

// drainErrors logs every pending GL error against stage. GL 4.1 has no
// debug output callback, so this is polled after each pass in debug mode.
// It never changes control flow.
func drainErrors(log *zap.Logger, stage string) int {
	n := 0
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		name, ok := glErrorNames[code]
		if !ok {
			name = "UNKNOWN"
		}
		log.Warn("gl error", zap.String("stage", stage), zap.String("error", name), zap.Uint32("code", code))
		n++
		if n >= 16 {
			// a lost context reports forever
			break
		}
	}
	return n
}
