package s3

import (
	"context"
	"crypto/sha1"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/encrypt"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/utils"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

const filenameKey = "Filename"

var log = logging.New().WithName("s3")

// FileStorage file storage on a s3 bucket, objects are named by their content hash
type FileStorage struct {
	Endpoint   string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Password   string
	Insecure   bool
	minioCient minio.Client
	secure     bool
	local      bool
}

var _ interfaces.FileStorage = &FileStorage{}

// Init initialise the s3 client
func (s *FileStorage) Init() error {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return err
	}
	endpoint := u.Host
	s.secure = u.Scheme == "https"
	host, _, _ := net.SplitHostPort(u.Host)
	var options *minio.Options
	if host == "127.0.0.1" || s.Insecure {
		options = &minio.Options{
			Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
			Secure: s.secure,
			Transport: &http.Transport{
				MaxIdleConns:       10,
				IdleConnTimeout:    30 * time.Second,
				DisableCompression: true,
				TLSClientConfig:    &tls.Config{InsecureSkipVerify: true},
			},
		}
		s.local = true
	} else {
		options = &minio.Options{
			Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
			Secure: s.secure,
		}
	}
	client, err := minio.New(endpoint, options)
	if err != nil {
		return err
	}
	s.minioCient = *client
	return nil
}

// GetStream getting the object of the file resource, nil if there is no such object
func (s *FileStorage) GetStream(ctx context.Context, res model.Resource) (interfaces.ResourceStream, error) {
	fr, ok := res.(*model.FileResource)
	if !ok || !utils.IsContentHash(fr.ContentHash) {
		return nil, nil
	}
	ok, err := s.has(ctx, fr.ContentHash)
	if err != nil || !ok {
		return nil, err
	}
	obj, err := s.minioCient.GetObject(ctx, s.Bucket, fr.ContentHash, minio.GetObjectOptions{
		ServerSideEncryption: s.getEncryption(),
	})
	if err != nil {
		return nil, err
	}
	return &objectStream{ReadCloser: obj}, nil
}

// ResourceHash the content hash for files, the sha1 of the url for urls
func (s *FileStorage) ResourceHash(res model.Resource) (string, error) {
	switch r := res.(type) {
	case *model.FileResource:
		return r.ContentHash, nil
	case *model.URLResource:
		return utils.StringHash(r.ExternalURL), nil
	}
	return "", fmt.Errorf("unknown resource type: %T", res)
}

// ResourceID the object name
func (s *FileStorage) ResourceID(res model.Resource) string {
	if fr, ok := res.(*model.FileResource); ok {
		return fmt.Sprintf("%s/%s", s.Bucket, fr.ContentHash)
	}
	return res.Ref()
}

// StoreFile storing the content as object. The content is spooled first to get the content hash.
func (s *FileStorage) StoreFile(filename string, r io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp("", "s3-*")
	if err != nil {
		return "", 0, err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()
	h := sha1.New()
	size, err := io.Copy(tmp, io.TeeReader(r, h))
	if err != nil {
		return "", 0, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", 0, err
	}
	hash := fmt.Sprintf("%x", h.Sum(nil))
	info, err := s.minioCient.PutObject(context.Background(), s.Bucket, hash, tmp, size, minio.PutObjectOptions{
		ServerSideEncryption: s.getEncryption(),
		ContentType:          "application/octet-stream",
		UserMetadata:         map[string]string{filenameKey: filename},
	})
	if err != nil {
		return "", 0, err
	}
	log.Debugf("stored object %s/%s, size %d", info.Bucket, info.Key, info.Size)
	return hash, size, nil
}

// HasFile checking, if an object is present
func (s *FileStorage) HasFile(contenthash string) (bool, error) {
	if !utils.IsContentHash(contenthash) {
		return false, nil
	}
	return s.has(context.Background(), contenthash)
}

// DeleteFile removing the object
func (s *FileStorage) DeleteFile(contenthash string) error {
	if !utils.IsContentHash(contenthash) {
		return os.ErrNotExist
	}
	return s.minioCient.RemoveObject(context.Background(), s.Bucket, contenthash, minio.RemoveObjectOptions{})
}

// Close closing the storage
func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) has(ctx context.Context, key string) (bool, error) {
	_, err := s.minioCient.StatObject(ctx, s.Bucket, key, minio.StatObjectOptions{
		ServerSideEncryption: s.getEncryption(),
	})
	if err != nil {
		var errResp minio.ErrorResponse
		if errors.As(err, &errResp) && errResp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// getEncryption here you get the ServerSide encryption for the service itself
func (s *FileStorage) getEncryption() encrypt.ServerSide {
	if !s.secure || s.local || s.Password == "" {
		return nil
	}
	return encrypt.DefaultPBKDF([]byte(s.Password), []byte(s.Bucket))
}

// objectStream the object has no local copy, the local backend spools it
type objectStream struct {
	io.ReadCloser
}

func (o *objectStream) LocalPath() string {
	return ""
}
