package battery

// DefaultShaderSource is the Kage program used by Mesh. Vertex source
// coordinates index the matcap (image 0) and the light map (image 1), both
// from the view-space normal. Time drives a slow sheen across the surface.
const DefaultShaderSource = `//kage:unit pixels
package main

var Time float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	m := imageSrc0At(src)
	l := imageSrc1At(src)
	sheen := 0.5 + 0.5*sin(Time*1.5+dst.y*0.01)
	rgb := m.rgb*(0.8+0.2*l.r) + l.rgb*0.15*sheen*m.a
	return vec4(rgb, m.a) * color
}
`
