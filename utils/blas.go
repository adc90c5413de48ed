package utils

// BLASBackend names the BLAS implementation behind gonum; building with
// -tags netlib and cgo switches it to OpenBLAS.
var BLASBackend = "gonum"
