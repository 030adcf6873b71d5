package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// ==================== 接口定义 ====================

// StoredObject 已存储的文件
type StoredObject struct {
	Key string
	URL string
}

// StorageProvider 商品图片存储
type StorageProvider interface {
	// Upload 上传文件，返回对象 key 和公开访问 URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (*StoredObject, error)
	// Delete 按 key 删除文件
	Delete(ctx context.Context, key string) error
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "local" | "s3" | "minio"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // S3 兼容端点 / MinIO 地址
	UseSSL    bool
	BasePath  string // key 前缀
	LocalDir  string // 本地存储目录
	PublicURL string // 公开访问地址前缀
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "minio":
		return NewMinIOStorage(cfg)
	case "local", "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	basePath  string
	publicURL string
}

func NewS3Storage(cfg StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// S3 兼容存储使用自定义端点
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		basePath:  cfg.BasePath,
		publicURL: cfg.PublicURL,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (*StoredObject, error) {
	key := generateKey(s.basePath, filename)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("上传S3失败: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if s.publicURL != "" {
		url = joinURL(s.publicURL, key)
	}
	return &StoredObject{Key: key, URL: url}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// ==================== MinIO 实现 ====================

type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	basePath  string
	publicURL string
}

func NewMinIOStorage(cfg StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查 bucket 失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("创建 bucket 失败: %w", err)
		}
		log.Infof("bucket %s 已创建", cfg.Bucket)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		basePath:  cfg.BasePath,
		publicURL: publicURL,
	}, nil
}

func (s *MinIOStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (*StoredObject, error) {
	key := generateKey(s.basePath, filename)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("上传 MinIO 失败: %w", err)
	}
	return &StoredObject{Key: key, URL: joinURL(s.publicURL, key)}, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// ==================== 本地存储 (开发测试用) ====================

type LocalStorage struct {
	dir       string
	basePath  string
	publicURL string
}

func NewLocalStorage(cfg StorageConfig) (*LocalStorage, error) {
	dir := cfg.LocalDir
	if dir == "" {
		dir = "./media"
	}
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "/media"
	}
	return &LocalStorage{dir: dir, basePath: cfg.BasePath, publicURL: publicURL}, nil
}

// Dir 本地文件根目录，用于静态文件路由
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Upload(_ context.Context, data []byte, filename string, _ string) (*StoredObject, error) {
	key := generateKey(s.basePath, filename)
	full := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}
	return &StoredObject{Key: key, URL: joinURL(s.publicURL, key)}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ==================== 工具函数 ====================

// generateKey basePath/2006/01/02/<uuid>.<ext>
func generateKey(basePath, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext
	datePath := time.Now().Format("2006/01/02")
	if basePath != "" {
		return path.Join(basePath, datePath, name)
	}
	return path.Join(datePath, name)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
