package api

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/terrain-mesh/internal/terrain"
)

// Бинарный формат меша для инструментов: little-endian,
// заголовок (magic, число вершин, число индексов), затем подряд
// позиции, нормали, UV и индексы.

const meshMagic = uint32(0x484d5354) // "TSMH" в little-endian

// EncodeMesh сериализует меш в бинарный буфер
func EncodeMesh(m *terrain.Mesh) ([]byte, error) {
	buf := &bytes.Buffer{}

	header := []uint32{meshMagic, uint32(len(m.Positions)), uint32(len(m.Indices))}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	for _, block := range []interface{}{m.Positions, m.Normals, m.UVs, m.Indices} {
		if err := binary.Write(buf, binary.LittleEndian, block); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// DecodeMesh восстанавливает меш из бинарного буфера
func DecodeMesh(data []byte) (*terrain.Mesh, error) {
	buf := bytes.NewReader(data)

	var header [3]uint32
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("чтение заголовка меша: %w", err)
	}
	if header[0] != meshMagic {
		return nil, fmt.Errorf("неверная сигнатура меша: %08x", header[0])
	}

	vertexCount := int(header[1])
	indexCount := int(header[2])

	mesh := &terrain.Mesh{
		Positions: make([]mgl32.Vec3, vertexCount),
		Normals:   make([]mgl32.Vec3, vertexCount),
		UVs:       make([]mgl32.Vec2, vertexCount),
		Indices:   make([]uint32, indexCount),
	}
	for _, block := range []interface{}{mesh.Positions, mesh.Normals, mesh.UVs, mesh.Indices} {
		if err := binary.Read(buf, binary.LittleEndian, block); err != nil {
			return nil, fmt.Errorf("чтение буферов меша: %w", err)
		}
	}

	return mesh, nil
}
