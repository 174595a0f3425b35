package simplefile

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/utils"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

const (
	// BinaryExt extension of the content file
	BinaryExt = ".bin"
	// DescriptionExt extension of the file description
	DescriptionExt = ".json"
)

var log = logging.New().WithName("simplefile")

// FileStorage storage for files in the file system, files are addressed by their sha1 content hash
type FileStorage struct {
	RootPath string // this is the root path for the file system storage
	filepath string
}

// Description the description of a stored file
type Description struct {
	ContentHash string `json:"contenthash"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	Created     int64  `json:"created"`
}

var _ interfaces.FileStorage = &FileStorage{}

// Init initialize this storage
func (s *FileStorage) Init() error {
	if s.RootPath == "" {
		return errors.New("root path should not be empty")
	}
	fp, err := filepath.Abs(s.RootPath)
	if err != nil {
		return err
	}
	s.filepath = fp
	log.Debugf("file storage path: %s", s.filepath)
	return os.MkdirAll(s.filepath, os.ModePerm)
}

// GetStream opening the content of the file, nil if there is no such file.
// Only file resources are served by this storage.
func (s *FileStorage) GetStream(_ context.Context, res model.Resource) (interfaces.ResourceStream, error) {
	fr, ok := res.(*model.FileResource)
	if !ok {
		return nil, nil
	}
	if !utils.IsContentHash(fr.ContentHash) {
		return nil, nil
	}
	f, err := os.Open(s.buildFilename(fr.ContentHash, BinaryExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &fileStream{File: f}, nil
}

// ResourceHash the content hash for files, the sha1 of the url for urls
func (s *FileStorage) ResourceHash(res model.Resource) (string, error) {
	switch r := res.(type) {
	case *model.FileResource:
		if r.ContentHash == "" {
			return "", errors.New("file without content hash")
		}
		return r.ContentHash, nil
	case *model.URLResource:
		return utils.StringHash(r.ExternalURL), nil
	}
	return "", fmt.Errorf("unknown resource type: %T", res)
}

// ResourceID the content hash or the url id
func (s *FileStorage) ResourceID(res model.Resource) string {
	switch r := res.(type) {
	case *model.FileResource:
		return r.ContentHash
	case *model.URLResource:
		return fmt.Sprintf("%d", r.ID)
	}
	return ""
}

// StoreFile storing the content, returning the content hash and the size.
// Storing the same content twice results in one file.
func (s *FileStorage) StoreFile(filename string, r io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(s.filepath, "upload-*")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	h := sha1.New()
	size, err := io.Copy(tmp, io.TeeReader(r, h))
	tmp.Close()
	if err != nil {
		return "", 0, err
	}
	hash := fmt.Sprintf("%x", h.Sum(nil))

	binFile := s.buildFilename(hash, BinaryExt)
	if err := os.MkdirAll(filepath.Dir(binFile), os.ModePerm); err != nil {
		return "", 0, err
	}
	if _, err := os.Stat(binFile); os.IsNotExist(err) {
		if err := os.Rename(tmp.Name(), binFile); err != nil {
			return "", 0, err
		}
	}
	d := Description{
		ContentHash: hash,
		Filename:    filename,
		Size:        size,
		Created:     time.Now().Unix(),
	}
	if err := s.writeJSONFile(d); err != nil {
		return "", 0, err
	}
	log.Debugf("stored file %s as %s", filename, hash)
	return hash, size, nil
}

// HasFile checking, if a file is present
func (s *FileStorage) HasFile(contenthash string) (bool, error) {
	if !utils.IsContentHash(contenthash) {
		return false, nil
	}
	_, err := os.Stat(s.buildFilename(contenthash, BinaryExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetDescription getting the description of the file
func (s *FileStorage) GetDescription(contenthash string) (*Description, error) {
	if !utils.IsContentHash(contenthash) {
		return nil, os.ErrNotExist
	}
	dat, err := os.ReadFile(s.buildFilename(contenthash, DescriptionExt))
	if err != nil {
		return nil, err
	}
	var d Description
	if err := json.Unmarshal(dat, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteFile removing a file from the storage
func (s *FileStorage) DeleteFile(contenthash string) error {
	if !utils.IsContentHash(contenthash) {
		return os.ErrNotExist
	}
	err := os.Remove(s.buildFilename(contenthash, BinaryExt))
	if err != nil {
		return err
	}
	err = os.Remove(s.buildFilename(contenthash, DescriptionExt))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close closing the storage
func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) writeJSONFile(d Description) error {
	jsonFile := s.buildFilename(d.ContentHash, DescriptionExt)
	js, err := json.Marshal(d)
	if err != nil {
		return err
	}
	err = os.WriteFile(jsonFile, js, os.ModePerm)
	if err != nil {
		os.Remove(jsonFile)
		return err
	}
	return nil
}

func (s *FileStorage) buildFilename(hash string, ext string) string {
	fp := filepath.Join(s.filepath, hash[:2], hash[2:4])
	return filepath.Join(fp, fmt.Sprintf("%s%s", hash, ext))
}

type fileStream struct {
	*os.File
}

func (f *fileStream) LocalPath() string {
	return f.Name()
}
