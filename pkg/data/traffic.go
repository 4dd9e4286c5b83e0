package data

import "image/color"

// TrafficArchetype is one kind of AI traffic vehicle
type TrafficArchetype struct {
	Type     string
	Color    color.RGBA
	Width    float64
	Height   float64
	SpeedMod float64 // Speed relative to the road scroll
}

// TrafficTypes is sampled uniformly when spawning traffic
var TrafficTypes = []TrafficArchetype{
	{Type: "sedan", Color: color.RGBA{0x95, 0xa5, 0xa6, 255}, Width: 35, Height: 60, SpeedMod: 1.0},
	{Type: "suv", Color: color.RGBA{0x7f, 0x8c, 0x8d, 255}, Width: 40, Height: 70, SpeedMod: 0.9},
	{Type: "truck", Color: color.RGBA{0x34, 0x49, 0x5e, 255}, Width: 45, Height: 90, SpeedMod: 0.7},
	{Type: "sports", Color: color.RGBA{0x9b, 0x59, 0xb6, 255}, Width: 32, Height: 55, SpeedMod: 1.2},
	{Type: "taxi", Color: color.RGBA{0xf1, 0xc4, 0x0f, 255}, Width: 35, Height: 60, SpeedMod: 0.95},
}
