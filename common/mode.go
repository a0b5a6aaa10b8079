package common

//go:generate go tool go-enum --marshal --names

// Layout technique used to arrange grid columns inside their container.
// ENUM(flex, float, inline, inline-block)
type Mode int
