package app

const (
	buttonPadding = 10
	buttonHeight  = 30
	buttonMinW    = 60
)

type Rect struct {
	X int16
	Y int16
	W uint16
	H uint16
}

// Layout places the buttons in two rows of two, Min and Max on top.
func Layout(width uint16) []Rect {
	w := (int(width) - 3*buttonPadding) / 2
	if w < buttonMinW {
		w = buttonMinW
	}

	rects := make([]Rect, 0, len(Actions))
	for i := range Actions {
		col, row := i%2, i/2
		rects = append(rects, Rect{
			X: int16(buttonPadding + col*(w+buttonPadding)),
			Y: int16(buttonPadding + row*(buttonHeight+buttonPadding)),
			W: uint16(w),
			H: buttonHeight,
		})
	}
	return rects
}

// StatusY is the top of the status area below the buttons.
func StatusY() int16 {
	return 2*buttonHeight + 3*buttonPadding
}
