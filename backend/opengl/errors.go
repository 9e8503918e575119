//go:build !nogl

package opengl

import "errors"

var errPassInProgress = errors.New("opengl: pass already in progress")
