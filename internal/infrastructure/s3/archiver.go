// Package s3 archiva las exportaciones de auditoría en un bucket S3 (o compatible).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

var _ audit.ExportArchiver = (*Archiver)(nil)

// Config bucket y credenciales. Sin AccessKeyID se usa la cadena de credenciales por defecto.
type Config struct {
	Bucket          string
	Region          string
	Prefix          string
	Endpoint        string // opcional: MinIO u otro compatible (path-style)
	AccessKeyID     string
	SecretAccessKey string
}

// putObjectAPI subconjunto del cliente S3 que usa el archivador.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver implementa audit.ExportArchiver con PutObject.
type Archiver struct {
	client putObjectAPI
	cfg    Config
	log    *logger.Logger
}

// NewArchiver crea el cliente S3 a partir de la configuración.
func NewArchiver(ctx context.Context, cfg Config, log *logger.Logger) (*Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	} else {
		log.Warn().Msg("S3: AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY no definidos, se usa la cadena por defecto")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración aws: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newArchiver(client, cfg, log), nil
}

func newArchiver(client putObjectAPI, cfg Config, log *logger.Logger) *Archiver {
	return &Archiver{client: client, cfg: cfg, log: log}
}

// Archive sube el cuerpo JSON bajo {prefix}/{key} y devuelve la URI s3://.
func (a *Archiver) Archive(ctx context.Context, key string, body []byte) (string, error) {
	objectKey := path.Join(a.cfg.Prefix, path.Base(key))
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.cfg.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", objectKey, err)
	}
	location := fmt.Sprintf("s3://%s/%s", a.cfg.Bucket, objectKey)
	a.log.Debug().Str("location", location).Int("bytes", len(body)).Msg("exportación archivada")
	return location, nil
}
