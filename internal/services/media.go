package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"yatube/internal/config"
	"yatube/internal/utils"
)

// SaveUpload 把上传的图片保存到 MediaRoot 下按用途划分的子目录
// (posts/、users/)，返回存储在实体上的相对路径。
func SaveUpload(file multipart.File, header *multipart.FileHeader, scope string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	case "":
		ext = ".jpg"
	default:
		return "", fmt.Errorf("不支持的图片格式: %s", ext)
	}

	dir := filepath.Join(config.MediaRoot, scope)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	name := utils.RandStringBytesMaskImpr(12) + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	return scope + "/" + name, nil
}
