package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions are the file extensions treated as labelable audio
var audioExtensions = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac", ".wma"}

// FilesystemStorage implements Storage on the local filesystem. The dataset
// output tree mirrors the pyannote convention: dataset/audio for audio
// copies, dataset/rttm for annotations.
type FilesystemStorage struct {
	audioDir string
	rttmDir  string
	wavDir   string
}

// NewFilesystemStorage creates a storage rooted at the given library and
// dataset directories, creating the dataset subtree as needed.
func NewFilesystemStorage(audioDir, datasetDir string) (Storage, error) {
	wavDir := filepath.Join(datasetDir, "dataset", "audio")
	rttmDir := filepath.Join(datasetDir, "dataset", "rttm")
	for _, dir := range []string{wavDir, rttmDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create dataset directory %s: %w", dir, err)
		}
	}

	return &FilesystemStorage{
		audioDir: audioDir,
		rttmDir:  rttmDir,
		wavDir:   wavDir,
	}, nil
}

func isAudioFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// baseName strips the extension from a file name
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ListAudioFiles enumerates the library directory filtered by audio
// extension, sorted by name.
func (fs *FilesystemStorage) ListAudioFiles(ctx context.Context) ([]AudioFile, error) {
	entries, err := os.ReadDir(fs.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var files []AudioFile
	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, AudioFile{
			Name:     entry.Name(),
			Path:     filepath.Join(fs.audioDir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// SaveExport writes the audio copy and RTTM text for a finished file
func (fs *FilesystemStorage) SaveExport(ctx context.Context, base, sourceAudioPath, rttmContent string) (string, string, error) {
	audioPath := filepath.Join(fs.wavDir, base+".wav")
	if err := copyFile(sourceAudioPath, audioPath); err != nil {
		return "", "", fmt.Errorf("failed to copy audio: %w", err)
	}

	rttmPath := filepath.Join(fs.rttmDir, base+".rttm")
	if err := os.WriteFile(rttmPath, []byte(rttmContent), 0644); err != nil {
		os.Remove(audioPath) // don't leave a half-written pair behind
		return "", "", fmt.Errorf("failed to write annotation: %w", err)
	}

	return audioPath, rttmPath, nil
}

// LoadAnnotation reads an existing RTTM annotation for a base name
func (fs *FilesystemStorage) LoadAnnotation(ctx context.Context, base string) (string, bool, error) {
	content, err := os.ReadFile(filepath.Join(fs.rttmDir, base+".rttm"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read annotation: %w", err)
	}
	return string(content), true, nil
}

// CompletedSet returns the base names that already have an RTTM file
func (fs *FilesystemStorage) CompletedSet(ctx context.Context) (map[string]bool, error) {
	completed := make(map[string]bool)

	entries, err := os.ReadDir(fs.rttmDir)
	if err != nil {
		if os.IsNotExist(err) {
			return completed, nil
		}
		return nil, fmt.Errorf("failed to read rttm directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".rttm") {
			completed[strings.TrimSuffix(entry.Name(), ".rttm")] = true
		}
	}
	return completed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
