package capi

/*
#include <stdlib.h>
#include "capi.h"
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"
)

// chessboardSize and inARow are this build's fixed board configuration,
// mirroring the original's CHESSBOARD_SIZE/IN_A_ROW build-time constants
// (spec.md §6); GetConfig reports them to C callers the same way
// global_GetConfig() did in the original capi.cc.
const (
	chessboardSize = 15
	inARow         = 5
)

// logPanic is deferred first in every exported entry point. A panic
// crossing back into C without a message visible to the host process is
// undebuggable, so this prints a diagnostic to stderr before re-panicking
// across the cgo boundary, preserving the "emits a diagnostic and aborts"
// contract of spec.md §7.
func logPanic() {
	if r := recover(); r != nil {
		fmt.Fprintln(os.Stderr, "capi: fatal:", r)
		panic(r)
	}
}

//export MCTS_Create
func MCTS_Create(boardBytes *C.uchar, vloss C.double, batchSize C.int, cb C.evaluator_cb_t) C.int {
	defer logPanic()

	n := chessboardSize * chessboardSize
	raw := C.GoBytes(unsafe.Pointer(boardBytes), C.int(2*n))

	h := Create(raw, chessboardSize, inARow, float64(vloss), int(batchSize), cCallback(cb))
	return C.int(h)
}

//export MCTS_Search
func MCTS_Search(handle C.int, numSims C.int, cpuct, dirichletAlpha C.double) {
	defer logPanic()
	Search(Handle(handle), int(numSims), float64(cpuct), float64(dirichletAlpha))
}

//export MCTS_StepForward
func MCTS_StepForward(handle C.int, x, y C.int) {
	defer logPanic()
	StepForward(Handle(handle), int(x), int(y))
}

//export MCTS_GetPi
func MCTS_GetPi(handle C.int, temperature C.double, out *C.double) {
	defer logPanic()

	n := chessboardSize * chessboardSize
	pi := make([]float64, n)
	GetPi(Handle(handle), float64(temperature), pi)

	dst := unsafe.Slice(out, n)
	for i, p := range pi {
		dst[i] = C.double(p)
	}
}

//export MCTS_Terminated
func MCTS_Terminated(handle C.int) C.bool {
	defer logPanic()
	return C.bool(Terminated(Handle(handle)))
}

//export MCTS_Value
func MCTS_Value(handle C.int) C.double {
	defer logPanic()
	return C.double(Value(Handle(handle)))
}

//export MCTS_Chessboard
func MCTS_Chessboard(handle C.int, out *C.uchar) {
	defer logPanic()

	raw := Chessboard(Handle(handle))
	dst := unsafe.Slice(out, len(raw))
	for i, b := range raw {
		dst[i] = C.uchar(b)
	}
}

//export MCTS_Destroy
func MCTS_Destroy(handle C.int) {
	defer logPanic()
	Destroy(Handle(handle))
}

//export MCTS_GetConfig
func MCTS_GetConfig() C.Config {
	defer logPanic()
	return C.Config{
		chessboard_size: C.int(chessboardSize),
		in_a_row:        C.int(inARow),
	}
}

// cCallback adapts a C evaluator_cb_t function pointer into an
// EvaluatorCB: it marshals the batch into C-side buffers, calls through
// cb via the invoke_evaluator trampoline (cgo cannot call a C function
// pointer value directly), then copies the written-back priors and
// values into the Go slices the mcts engine expects.
func cCallback(cb C.evaluator_cb_t) EvaluatorCB {
	return func(boards [][]byte, priors [][]float64, values []float64) {
		n := len(boards)

		cBoards := make([]*C.uchar, n)
		cProbs := make([]*C.double, n)
		cValues := make([]*C.double, n)

		for i := range boards {
			cBoards[i] = (*C.uchar)(C.CBytes(boards[i]))
			cProbs[i] = (*C.double)(C.malloc(C.size_t(len(priors[i])) * C.size_t(unsafe.Sizeof(C.double(0)))))
			cValues[i] = (*C.double)(C.malloc(C.size_t(unsafe.Sizeof(C.double(0)))))
		}

		C.invoke_evaluator(cb, C.int(n),
			(**C.uchar)(unsafe.Pointer(&cBoards[0])),
			(**C.double)(unsafe.Pointer(&cProbs[0])),
			(**C.double)(unsafe.Pointer(&cValues[0])))

		for i := range boards {
			probsSlice := unsafe.Slice((*C.double)(cProbs[i]), len(priors[i]))
			for j := range priors[i] {
				priors[i][j] = float64(probsSlice[j])
			}
			values[i] = float64(*cValues[i])

			C.free(unsafe.Pointer(cBoards[i]))
			C.free(unsafe.Pointer(cProbs[i]))
			C.free(unsafe.Pointer(cValues[i]))
		}
	}
}
