// Command demo is the window-system and input collaborator spec.md §1
// calls out of scope for the rendering core: it opens a window, blits the
// engine's CPU-rasterized pixel buffer to a screen-filling textured quad
// every frame, and turns keyboard state into the engine's CameraInput.
// The GPU here is a presentation surface only — a single textured quad
// uploaded from the engine's finished frame — never a shader computing
// the scene itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mirstar13/softcore/engine"
)

func init() {
	// GLFW and GL calls must run on the OS thread that created the window.
	runtime.LockOSThread()
}

var (
	width     = flag.Int("width", 640, "raster width")
	height    = flag.Int("height", 480, "raster height")
	disableMT = flag.Bool("no-mt", false, "disable multithreaded rendering")
)

const (
	blitVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 fragUV;
void main() {
	fragUV = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

	blitFragmentShader = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;
uniform sampler2D frameTexture;
void main() {
	outColor = texture(frameTexture, fragUV);
}
` + "\x00"
)

// quadVertices is a screen-filling quad (two triangles) with UVs flipped
// on Y, since the engine's pixel rows run top-to-bottom but GL textures
// sample bottom-to-top.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

func main() {
	flag.Parse()

	scene := engine.NewScene()
	eng := engine.New(scene, engine.Config{Width: *width, Height: *height, DisableMultithreading: *disableMT})
	eng.Alert = func(kind, message string) {
		slog.Error("engine alert", "kind", kind, "message", message)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(*width, *height, "softcore demo", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("gl init: %v", err)
	}

	program, err := newBlitProgram()
	if err != nil {
		log.Fatalf("compiling blit shader: %v", err)
	}
	gl.UseProgram(program)

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	if err := keyboard.Open(); err != nil {
		slog.Warn("keyboard input unavailable, camera will be static", "error", err)
	} else {
		defer keyboard.Close()
	}

	last := time.Now()
	rgb := make([]byte, *width**height*3)

	for !window.ShouldClose() {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		input := pollInput(dt)

		pixels, err := eng.RunFrame(dt.Seconds(), input)
		if err != nil {
			log.Fatalf("render frame: %v", err)
		}
		if pixels != nil {
			packRGB(pixels, rgb, *width, *height)
			gl.BindTexture(gl.TEXTURE_2D, texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(*width), int32(*height), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(rgb))

			gl.Clear(gl.COLOR_BUFFER_BIT)
			gl.UseProgram(program)
			gl.BindVertexArray(vao)
			gl.DrawArrays(gl.TRIANGLES, 0, 6)
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}

	eng.Shutdown()
}

// pollInput drains any pending keystroke (non-blocking best-effort) and
// turns WASD + space into a CameraInput, per spec.md §6.
func pollInput(dt time.Duration) engine.CameraInput {
	in := engine.CameraInput{DeltaTimeMs: float64(dt.Milliseconds())}

	select {
	case event := <-keyboard.Keys:
		switch event.Rune {
		case 'w':
			in.MoveForward = 1
		case 's':
			in.MoveForward = -1
		case 'a':
			in.MoveRight = -1
		case 'd':
			in.MoveRight = 1
		}
		if event.Key == keyboard.KeySpace {
			in.Sprint = true
		}
	default:
	}

	return in
}

// packRGB flattens the engine's row-major Color buffer into a tightly
// packed RGB byte slice for upload, flipping no rows (UV flip handles
// the top-to-bottom vs bottom-to-top mismatch instead).
func packRGB(pixels [][]engine.Color, out []byte, width, height int) {
	for y := 0; y < height; y++ {
		row := pixels[y]
		base := y * width * 3
		for x := 0; x < width; x++ {
			c := row[x]
			i := base + x*3
			out[i] = byte(c.R)
			out[i+1] = byte(c.G)
			out[i+2] = byte(c.B)
		}
	}
}

func newBlitProgram() (uint32, error) {
	vertexShader, err := compileShader(blitVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(blitFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("link program: %v", infoLog)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("compile shader: %v", infoLog)
	}

	return shader, nil
}
