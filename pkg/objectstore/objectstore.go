package objectstore

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type ObjectStore interface {
	SaveToBucket(ctx context.Context, bucket string, name string, data []byte, contentType string) error
	GetFromBucket(ctx context.Context, bucket string, name string) ([]byte, error)
	List(ctx context.Context, bucket string, prefix string) ([]string, error)
}

type Impl struct {
	MinioClient *minio.Client
}

func NewObjectStore() (*Impl, error) {
	client, err := GetMinioClient()
	if err != nil {
		return nil, err
	}
	return &Impl{MinioClient: client}, nil
}

func (obs *Impl) GetFromBucket(ctx context.Context, bucket string, name string) ([]byte, error) {
	object, err := obs.MinioClient.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	return io.ReadAll(object)
}

// SaveToBucket uploads data as name, creating the bucket on first use.
func (obs *Impl) SaveToBucket(ctx context.Context, bucket string, name string, data []byte, contentType string) error {
	exists, err := obs.MinioClient.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := obs.MinioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		logrus.Infof("Created bucket %s", bucket)
	}

	uploadInfo, err := obs.MinioClient.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return err
	}

	logrus.Infof("Saved to bucket: %s/%s (%d bytes)", uploadInfo.Bucket, uploadInfo.Key, uploadInfo.Size)
	return nil
}

func (obs *Impl) List(ctx context.Context, bucket string, prefix string) ([]string, error) {
	var names []string
	for object := range obs.MinioClient.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, object.Err
		}
		names = append(names, object.Key)
	}
	sort.Strings(names)
	return names, nil
}

func GetMinioClient() (*minio.Client, error) {
	accessKey := viper.GetString(configkey.MinioAccessKey)
	secretKey := viper.GetString(configkey.MinioSecretKey)
	minioHost := viper.GetString(configkey.MinioHost)
	secure := viper.GetBool(configkey.MinioSecure)

	logrus.Debugf("Minio host=%s, accessKey=%s, secure=%t", minioHost, accessKey, secure)

	return minio.New(minioHost, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
}
