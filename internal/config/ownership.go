package config

import (
	"os"
	"path/filepath"
	"syscall"
)

// FixOwnership hands path, and the directories above it that lie inside the
// user's home, to the home directory's owner. It only acts when running as
// root under a home owned by someone else, so a log file created under sudo
// stays writable by the user.
func FixOwnership(path string) {
	if os.Getuid() != 0 {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return
	}
	uid, gid, ok := ownerOf(home)
	if !ok || uid == 0 {
		return
	}

	_ = os.Lchown(path, uid, gid)
	for dir := filepath.Dir(path); insideHome(home, dir); dir = filepath.Dir(dir) {
		du, _, ok := ownerOf(dir)
		if !ok || du == uid {
			return
		}
		_ = os.Lchown(dir, uid, gid)
	}
}

func ownerOf(path string) (uid, gid int, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}

// insideHome reports whether dir is strictly below home.
func insideHome(home, dir string) bool {
	rel, err := filepath.Rel(home, dir)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !filepath.IsAbs(rel) && !startsWithDotDot(rel)
}

func startsWithDotDot(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
