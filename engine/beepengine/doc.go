// SPDX-License-Identifier: EPL-2.0

// Package beepengine plays decoded buffers on the system speaker through
// github.com/gopxl/beep/v2.
//
// Speaker output needs cgo on Linux. Builds without it get an engine
// constructor that returns ErrAudioUnavailable.
package beepengine
