package services

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ThreadSource 按顺序产出线程记录
// Next 在结束时返回 io.EOF；返回 *RecordError 表示该条可跳过，其余错误视为致命
type ThreadSource interface {
	Next() (*ThreadRecord, error)
	Close() error
}

// OpenThreadSource 根据路径类型打开来源：目录用 DirSource，其余按 zip 处理
func OpenThreadSource(path string) (ThreadSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return NewDirSource(path)
	}
	return NewArchiveSource(path)
}

func decodeThread(name string, data []byte) (*ThreadRecord, error) {
	var rec ThreadRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &RecordError{Name: name, Err: err}
	}
	rec.Source = name
	return &rec, nil
}

func isThreadFile(name string) bool {
	return strings.HasSuffix(name, ".json")
}

// ArchiveSource 读取 zip 包中每个 .json 条目，按包内顺序
type ArchiveSource struct {
	reader *zip.ReadCloser
	files  []*zip.File
	pos    int
}

func NewArchiveSource(path string) (*ArchiveSource, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &ArchiveSource{reader: r, files: r.File}, nil
}

func (s *ArchiveSource) Next() (*ThreadRecord, error) {
	for s.pos < len(s.files) {
		f := s.files[s.pos]
		s.pos++
		if f.FileInfo().IsDir() || !isThreadFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, &RecordError{Name: f.Name, Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &RecordError{Name: f.Name, Err: err}
		}
		return decodeThread(f.Name, data)
	}
	return nil, io.EOF
}

func (s *ArchiveSource) Close() error {
	return s.reader.Close()
}

// DirSource 读取目录下的 *.json 文件（不递归），按文件名排序
type DirSource struct {
	dir   string
	names []string
	pos   int
}

func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isThreadFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return &DirSource{dir: dir, names: names}, nil
}

func (s *DirSource) Next() (*ThreadRecord, error) {
	if s.pos >= len(s.names) {
		return nil, io.EOF
	}
	name := s.names[s.pos]
	s.pos++

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, &RecordError{Name: name, Err: err}
	}
	return decodeThread(name, data)
}

func (s *DirSource) Close() error {
	return nil
}
