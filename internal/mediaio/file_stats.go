package mediaio

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// FileStatsProducer implements StatsProducer: size and mtime come from
// os.Stat; the content hash is MD5 over the first and last chunk of the
// file (chunk = maxChunkSize/2) for files larger than maxChunkSize,
// otherwise MD5 over the whole file.
type FileStatsProducer struct {
	MaxChunkSize int64
}

// NewFileStatsProducer constructs a FileStatsProducer with the given
// full/partial hashing threshold.
func NewFileStatsProducer(maxChunkSize int64) *FileStatsProducer {
	return &FileStatsProducer{MaxChunkSize: maxChunkSize}
}

// Stat implements StatsProducer.
func (p *FileStatsProducer) Stat(path string) (api.FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return api.FileStats{}, fmt.Errorf("mediaio: stat %s: %w", path, err)
	}

	contentHash, err := p.contentHash(path, info.Size())
	if err != nil {
		return api.FileStats{}, fmt.Errorf("mediaio: content hash %s: %w", path, err)
	}

	return api.FileStats{
		ContentHash: contentHash,
		Size:        info.Size(),
		CreatedAt:   info.ModTime(), // os.FileInfo has no portable creation time
		ModifiedAt:  info.ModTime(),
	}, nil
}

func (p *FileStatsProducer) contentHash(path string, size int64) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := md5.New()

	if size <= p.MaxChunkSize {
		if _, err := io.Copy(h, file); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}

	chunk := p.MaxChunkSize / 2
	if _, err := io.CopyN(h, file, chunk); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(-chunk, io.SeekEnd); err != nil {
		return "", err
	}
	if _, err := io.CopyN(h, file, chunk); err != nil && err != io.EOF {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
