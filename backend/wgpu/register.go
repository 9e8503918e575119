//go:build !nogpu

package wgpu

import "github.com/gogpu/g3d/device"

func init() {
	device.Register("wgpu", func(cfg device.Config) (device.Context, error) {
		c, err := NewContext(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}
