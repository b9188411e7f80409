package emulator

import (
	"fmt"
	"strings"

	"github.com/batpulabs/batpu-tools/assembler"
)

func (s *Screen) reset() {
	s.mutex.Lock()
	s.buffer = [ScreenWidth * ScreenHeight]bool{}
	s.visible = [ScreenWidth * ScreenHeight]bool{}
	s.x, s.y = 0, 0
	s.mutex.Unlock()
}

func (s *Screen) setPixel(on bool) {
	s.mutex.Lock()
	if s.x < ScreenWidth && s.y < ScreenHeight {
		s.buffer[int(s.y)*ScreenWidth+int(s.x)] = on
	}
	s.mutex.Unlock()
}

func (s *Screen) loadPixel() uint8 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.x >= ScreenWidth || s.y >= ScreenHeight {
		return 0
	}
	if s.buffer[int(s.y)*ScreenWidth+int(s.x)] {
		return 1
	}
	return 0
}

func (s *Screen) show() {
	s.mutex.Lock()
	s.visible = s.buffer
	s.pushes++
	s.mutex.Unlock()
}

func (s *Screen) clearBuffer() {
	s.mutex.Lock()
	s.buffer = [ScreenWidth * ScreenHeight]bool{}
	s.mutex.Unlock()
}

// Pixel reads the visible frame, not the back buffer.
func (s *Screen) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.visible[y*ScreenWidth+x]
}

// Frame snapshots the visible frame in row-major order.
func (s *Screen) Frame() []bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	frame := make([]bool, len(s.visible))
	copy(frame, s.visible[:])
	return frame
}

// Pushes counts how many times the buffer has been pushed to the visible
// frame. The playground polls this to decide when to stream a frame.
func (s *Screen) Pushes() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.pushes
}

func (d *CharDisplay) reset() {
	d.slots = [CharDisplaySize]rune{}
	d.next = 0
	d.shown = ""
}

func (d *CharDisplay) write(value uint8) {
	if d.next >= CharDisplaySize {
		return
	}
	char := ' '
	if int(value) < len(assembler.Characters) {
		char = assembler.Characters[value]
	}
	d.slots[d.next] = char
	d.next++
}

func (d *CharDisplay) draw() string {
	var b strings.Builder
	for i := 0; i < d.next; i++ {
		b.WriteRune(d.slots[i])
	}
	d.shown = b.String()
	return d.shown
}

func (d *CharDisplay) clear() {
	d.slots = [CharDisplaySize]rune{}
	d.next = 0
}

// Shown returns the text published by the last draw.
func (d *CharDisplay) Shown() string {
	return d.shown
}

func (d *NumberDisplay) reset() {
	d.value = 0
	d.signed = false
	d.shown = false
}

// String renders the display content: empty when cleared, the value in the
// current signedness otherwise.
func (d *NumberDisplay) String() string {
	if !d.shown {
		return ""
	}
	if d.signed {
		return fmt.Sprintf("%d", int8(d.value))
	}
	return fmt.Sprintf("%d", d.value)
}

func (inst *EmulatorInstance) ioRead(port uint8) uint8 {
	switch port {
	case portLoadPixel:
		return inst.screen.loadPixel()
	case portRNG:
		return uint8(inst.rng.Intn(256))
	case portController:
		inst.controllerMutex.Lock()
		defer inst.controllerMutex.Unlock()
		return inst.controller
	}
	return 0
}

func (inst *EmulatorInstance) ioWrite(port uint8, value uint8) {
	switch port {
	case portPixelX:
		inst.screen.mutex.Lock()
		inst.screen.x = value & (ScreenWidth - 1)
		inst.screen.mutex.Unlock()
	case portPixelY:
		inst.screen.mutex.Lock()
		inst.screen.y = value & (ScreenHeight - 1)
		inst.screen.mutex.Unlock()
	case portDrawPixel:
		inst.screen.setPixel(true)
	case portClearPixel:
		inst.screen.setPixel(false)
	case portShowScreen:
		inst.screen.show()
		if inst.screenCallback != nil {
			inst.screenCallback(inst.screen)
		}
	case portClearScreen:
		inst.screen.clearBuffer()

	case portCharWrite:
		inst.chars.write(value)
	case portCharDraw:
		text := inst.chars.draw()
		if inst.charDisplayCallback != nil {
			inst.charDisplayCallback(text)
		}
	case portCharClear:
		inst.chars.clear()

	case portNumberShow:
		inst.numbers.value = value
		inst.numbers.shown = true
		if inst.numberDisplayCallback != nil {
			inst.numberDisplayCallback(inst.numbers.String())
		}
	case portNumberClear:
		inst.numbers.shown = false
		if inst.numberDisplayCallback != nil {
			inst.numberDisplayCallback("")
		}
	case portNumberSigned:
		inst.numbers.signed = true
	case portNumberUnsigned:
		inst.numbers.signed = false
	}
}
