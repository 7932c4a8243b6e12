package terrain

// DebugTextureSize — ширина и высота отладочной текстуры в текселях
const DebugTextureSize = 8

// debugPalette — 8 RGBA-текселей исходной горизонтальной палитры
var debugPalette = [DebugTextureSize * 4]byte{
	255, 102, 159, 255,
	255, 159, 102, 255,
	236, 255, 102, 255,
	121, 255, 102, 255,
	102, 255, 198, 255,
	102, 198, 255, 255,
	121, 102, 255, 255,
	255, 236, 102, 255,
}

// DebugTexture — изображение RGBA8 построчно, 4 байта на тексель
type DebugTexture struct {
	Width  int
	Height int
	Pixels []byte
}

// UVDebugTexture создаёт цветной тестовый паттерн 8x8 для визуальной
// проверки ориентации UV-развёртки. Каждая строка — палитра предыдущей,
// повёрнутая вправо на один тексель, поэтому цветные полосы идут по
// диагонали. Детерминирована, генерируется заново при каждом вызове.
func UVDebugTexture() DebugTexture {
	palette := debugPalette
	pixels := make([]byte, DebugTextureSize*DebugTextureSize*4)

	for y := 0; y < DebugTextureSize; y++ {
		offset := DebugTextureSize * y * 4
		copy(pixels[offset:offset+DebugTextureSize*4], palette[:])
		palette = rotateRightTexel(palette)
	}

	return DebugTexture{
		Width:  DebugTextureSize,
		Height: DebugTextureSize,
		Pixels: pixels,
	}
}

// rotateRightTexel циклически сдвигает палитру на один тексель (4 байта)
func rotateRightTexel(p [DebugTextureSize * 4]byte) [DebugTextureSize * 4]byte {
	var out [DebugTextureSize * 4]byte
	copy(out[:4], p[len(p)-4:])
	copy(out[4:], p[:len(p)-4])
	return out
}
