package finder

// FileList is the ordered working list of found files. Paths are unique.
type FileList struct {
	files []FoundFile
	index map[string]int
}

// NewFileList creates a list from files, dropping repeated paths.
func NewFileList(files []FoundFile) *FileList {
	list := &FileList{}
	list.Replace(files)

	return list
}

// Replace discards the current contents and takes files instead.
func (l *FileList) Replace(files []FoundFile) {
	l.files = make([]FoundFile, 0, len(files))
	l.index = make(map[string]int, len(files))

	for _, file := range files {
		if _, dup := l.index[file.Path]; dup {
			continue
		}

		l.index[file.Path] = len(l.files)
		l.files = append(l.files, file)
	}
}

// Files returns a copy of the list.
func (l *FileList) Files() []FoundFile {
	return append([]FoundFile(nil), l.files...)
}

// Paths returns the paths in list order.
func (l *FileList) Paths() []string {
	paths := make([]string, len(l.files))
	for i, file := range l.files {
		paths[i] = file.Path
	}

	return paths
}

// Len returns the number of files.
func (l *FileList) Len() int {
	return len(l.files)
}

// Contains reports whether path is in the list.
func (l *FileList) Contains(path string) bool {
	_, ok := l.index[path]

	return ok
}

// Get returns the entry for path.
func (l *FileList) Get(path string) (FoundFile, bool) {
	i, ok := l.index[path]
	if !ok {
		return FoundFile{}, false
	}

	return l.files[i], true
}

// TotalSize sums the sizes of all files.
func (l *FileList) TotalSize() int64 {
	var total int64
	for _, file := range l.files {
		total += file.Size
	}

	return total
}

// Remove drops the given paths and returns how many were present.
func (l *FileList) Remove(paths ...string) int {
	drop := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if l.Contains(path) {
			drop[path] = struct{}{}
		}
	}

	if len(drop) == 0 {
		return 0
	}

	kept := l.files[:0]
	for _, file := range l.files {
		if _, gone := drop[file.Path]; !gone {
			kept = append(kept, file)
		}
	}

	l.Replace(kept)

	return len(drop)
}
