// Package display adapts the console's framebuffer to a pixel/pixelgl
// window, generalizing the teacher's screen.go from a fixed internal
// resolution to the console's common.FrameWidth/FrameHeight constants and
// routing keyboard state into Console.SetButtons instead of a package-
// level key map.
package display

import (
	"image"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/tiagolobo-student/gones/internal/common"
)

// KeyMap binds host keyboard keys to one controller's 8 buttons, in
// common.BitA..common.BitRight order.
type KeyMap [8]pixelgl.Button

// DefaultKeyMap is a conventional WASD+JK layout for player one.
var DefaultKeyMap = KeyMap{
	pixelgl.KeyJ,     // A
	pixelgl.KeyK,     // B
	pixelgl.KeyRightShift, // Select
	pixelgl.KeyEnter, // Start
	pixelgl.KeyW,     // Up
	pixelgl.KeyS,     // Down
	pixelgl.KeyA,     // Left
	pixelgl.KeyD,     // Right
}

// Window owns the pixelgl game window and the RGBA backing image the
// console's framebuffer is copied into once per displayed frame.
type Window struct {
	win    *pixelgl.Window
	img    *image.RGBA
	scale  float64
	keymap KeyMap
}

// NewWindow opens a pixelgl window sized to the NES's picture at the
// given integer scale factor.
func NewWindow(title string, scale float64) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, common.FrameWidth*scale, common.FrameHeight*scale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{
		win:    win,
		img:    image.NewRGBA(image.Rect(0, 0, common.FrameWidth, common.FrameHeight)),
		scale:  scale,
		keymap: DefaultKeyMap,
	}, nil
}

func (w *Window) Closed() bool {
	return w.win.Closed()
}

// Present copies a console framebuffer into the window and flips it.
func (w *Window) Present(fb *common.Framebuffer) {
	copy(w.img.Pix, fb.Pixels[:])
	w.win.Clear(colornames.Black)
	pic := pixel.PictureDataFromImage(w.img)
	sprite := pixel.NewSprite(pic, pic.Bounds())
	center := w.win.Bounds().Center()
	sprite.Draw(w.win, pixel.IM.Scaled(pixel.ZV, w.scale).Moved(center))
	w.win.Update()
}

// PollButtons reads the current state of the bound keys into an 8-bit
// button mask suitable for Console.SetButtons.
func (w *Window) PollButtons() uint8 {
	var mask uint8
	for bit, key := range w.keymap {
		if w.win.Pressed(key) {
			mask |= 1 << uint(bit)
		}
	}
	return mask
}
