package recording

import "github.com/gogpu/g3d/device"

func init() {
	device.Register("recording", func(cfg device.Config) (device.Context, error) {
		return NewContext(cfg), nil
	})
}
