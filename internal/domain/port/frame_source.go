package port

import "cell-finder/internal/domain/entity"

// FrameSource готовит кадр для детекции из байтов снимка
type FrameSource interface {
	// Load декодирует снимок и приводит его к рабочему разрешению
	Load(imageData []byte) (*entity.Frame, error)
}
