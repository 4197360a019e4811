package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var (
	// guard ringan di sisi controller
	MaxUploadSize = int64(5 * 1024 * 1024)

	reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
)

func webpQuality() float32 {
	if v := strings.TrimSpace(os.Getenv("WEBP_QUALITY")); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 && f <= 100 {
			return float32(f)
		}
	}
	return 80
}

// ConvertToWebP: decode gambar apapun (jpeg/png/gif), resize max sisi 512,
// encode ulang ke WebP. Foto profil tidak perlu lebih besar dari itu.
func ConvertToWebP(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("file bukan gambar yang valid: %w", err)
	}

	img = imaging.Fit(img, 512, 512, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality()}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateUniqueFilename: <folder>/<yyyymmdd>-<uuid>-<nama-aman>.webp
func GenerateUniqueFilename(folder, originalFilename string) string {
	base := originalFilename
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	safe := reUnsafeFilename.ReplaceAllString(base, "_")
	return fmt.Sprintf("%s/%s-%s-%s.webp", folder, time.Now().Format("20060102"), uuid.New().String(), safe)
}

// UploadImageToOSS: konversi ke WebP lalu upload ke bucket OSS.
// Mengembalikan URL publik objeknya.
func UploadImageToOSS(folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("ukuran gambar melebihi %dMB", MaxUploadSize/(1024*1024))
	}

	data, err := ConvertToWebP(fh)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	accessKey := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	secretKey := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	if endpoint == "" || bucketName == "" {
		return "", fmt.Errorf("OSS belum dikonfigurasi (OSS_ENDPOINT / OSS_BUCKET)")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return "", fmt.Errorf("gagal init OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return "", fmt.Errorf("gagal akses bucket: %w", err)
	}

	objectKey := GenerateUniqueFilename(folder, fh.Filename)
	if err := bucket.PutObject(objectKey, bytes.NewReader(data),
		oss.ContentType("image/webp")); err != nil {
		return "", fmt.Errorf("upload gambar gagal: %w", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", bucketName, endpoint, objectKey), nil
}
