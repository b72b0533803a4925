package common

// Virtual key codes for cross-platform input handling, matching the window
// layer's key callbacks. Printable keys carry their ASCII value; the rest
// follow GLFW's codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW uint32 = 87
	KeyA uint32 = 65
	KeyS uint32 = 83
	KeyD uint32 = 68
	KeyQ uint32 = 81
	KeyE uint32 = 69

	KeySpace     uint32 = 32
	KeyBackspace uint32 = 259
	KeyTab       uint32 = 258
	KeyEsc       uint32 = 256

	Key0 uint32 = 48
	Key1 uint32 = 49
	Key2 uint32 = 50
	Key3 uint32 = 51
	Key4 uint32 = 52
	Key5 uint32 = 53
	Key6 uint32 = 54
	Key7 uint32 = 55
	Key8 uint32 = 56
	Key9 uint32 = 57

	KeyLeft  uint32 = 263
	KeyRight uint32 = 262
	KeyUp    uint32 = 265
	KeyDown  uint32 = 264

	KeyLeftShift  uint32 = 340
	KeyRightShift uint32 = 344
)
