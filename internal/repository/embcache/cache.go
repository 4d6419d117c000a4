// Package embcache persists per-source embeddings between restarts so a
// catalog rebuild does not recompute vectors that the feed did not change.
package embcache

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// maxDimensions bounds a single vector frame; anything larger means a
// corrupt cache file.
const maxDimensions = 1 << 16

// IsValid reports whether the cache at cachePath may be reused for the feed
// at feedPath: the cache must exist and be at least as new as the feed.
// Any filesystem error counts as invalid — the build falls back to
// recomputation instead of failing startup.
func IsValid(cachePath, feedPath string) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	feedInfo, err := os.Stat(feedPath)
	if err != nil {
		return false
	}
	return !cacheInfo.ModTime().Before(feedInfo.ModTime())
}

// Load reads the cached source id -> vector mapping. Returns nil on a
// missing file or any decode error; both are logged and degrade to
// recomputation, never to a startup failure.
func Load(path string, logger *zap.Logger) map[int][]float32 {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to open embedding cache", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	vectors, err := decode(bufio.NewReader(f))
	if err != nil {
		logger.Warn("Failed to decode embedding cache", zap.String("path", path), zap.Error(err))
		return nil
	}
	return vectors
}

// Save writes the mapping to path. Best-effort: a failure is logged and
// only degrades future startups to recomputation.
func Save(vectors map[int][]float32, path string, logger *zap.Logger) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		logger.Warn("Failed to create embedding cache", zap.String("path", path), zap.Error(err))
		return
	}

	w := bufio.NewWriter(f)
	err = encode(w, vectors)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Warn("Failed to write embedding cache", zap.String("path", path), zap.Error(err))
		return
	}

	logger.Info("Saved embedding cache", zap.String("path", path), zap.Int("vectors", len(vectors)))
}

// encode writes frames of (uint32 id, uint32 dim, dim little-endian
// float32s), sorted by id so repeated saves produce identical files.
func encode(w io.Writer, vectors map[int][]float32) error {
	ids := make([]int, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		vec := vectors[id]
		header := make([]byte, 8)
		binary.LittleEndian.PutUint32(header[0:], uint32(id))
		binary.LittleEndian.PutUint32(header[4:], uint32(len(vec)))
		if _, err := w.Write(header); err != nil {
			return fmt.Errorf("write frame header: %w", err)
		}
		if _, err := w.Write(vectorToBytes(vec)); err != nil {
			return fmt.Errorf("write vector %d: %w", id, err)
		}
	}
	return nil
}

func decode(r io.Reader) (map[int][]float32, error) {
	vectors := make(map[int][]float32)
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if errors.Is(err, io.EOF) {
				return vectors, nil
			}
			return nil, fmt.Errorf("read frame header: %w", err)
		}

		id := int(binary.LittleEndian.Uint32(header[0:]))
		dim := binary.LittleEndian.Uint32(header[4:])
		if dim > maxDimensions {
			return nil, fmt.Errorf("vector %d: implausible dimension %d", id, dim)
		}

		data := make([]byte, dim*4)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("read vector %d: %w", id, err)
		}
		vectors[id] = bytesToVector(data)
	}
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) []float32 {
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec
}
