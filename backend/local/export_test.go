package local

// RunProgram exposes the program executor to the package tests so they can
// start from an arbitrary basis state.
var RunProgram = runProgram
