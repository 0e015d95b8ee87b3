package viewer

// Key is a keyboard key name as reported by the browser's KeyboardEvent.key.
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyPlus       Key = "+"
	KeyEquals     Key = "="
	KeyMinus      Key = "-"
	KeyZero       Key = "0"
)

// lightboxBindings maps keys to modal actions.
var lightboxBindings = map[Key]func(*Lightbox){
	KeyEscape:     (*Lightbox).Close,
	KeyArrowLeft:  (*Lightbox).Prev,
	KeyArrowRight: (*Lightbox).Next,
	KeyPlus:       (*Lightbox).ZoomIn,
	KeyEquals:     (*Lightbox).ZoomIn,
	KeyMinus:      (*Lightbox).ZoomOut,
	KeyZero:       (*Lightbox).ResetZoom,
}
