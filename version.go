package unify

// Version is the library version. Release builds override it with
// -ldflags "-X github.com/aretw0/unify.Version=...".
var Version = "v0.3.0-dev"
