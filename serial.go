// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/atomix"

// Serial identifies a Runtime (one logical thread of execution).
// Each call to NewRuntime assigns the next serial value.
type Serial = uint32

// runtimes is the process-wide counter for runtime serials.
// Runtimes are created from arbitrary goroutines, so the counter is atomic
// even though each Runtime is confined to one goroutine afterwards.
var runtimes atomix.Uint32

func nextSerial() Serial {
	return runtimes.Add(1)
}
