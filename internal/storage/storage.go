// Package storage guarda os arquivos enviados em um diretório local.
// A chave de cada arquivo é um uuid com a extensão original — o nome que o
// usuário deu fica só no registro do documento, nunca vira nome de arquivo.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var dir string

func Init(uploadDir string) error {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}
	dir = uploadDir
	return nil
}

// Save grava o conteúdo sob uma chave nova e a devolve.
func Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(filepath.Join(dir, key))
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(filepath.Join(dir, key))
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return key, nil
}

func Path(key string) string {
	return filepath.Join(dir, key)
}

func Exists(key string) bool {
	if key == "" {
		return false
	}
	_, err := os.Stat(Path(key))
	return err == nil
}

func Remove(key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(Path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Sweep apaga arquivos que nenhum documento referencia — sobras de operações
// interrompidas entre a escrita do arquivo e o commit no banco.
func Sweep(inUse map[string]bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || inUse[entry.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
