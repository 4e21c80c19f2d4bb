package shapeingest

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buffos/meetingvideo/internal/xmlutil"
)

// convertPollShape rewrites a poll annotation's embedded image reference
// to either a file:// URI or a base64 data URI, per spec.md §4.2. baseDir
// resolves the original href, which is a path relative to the recording.
func convertPollShape(g *node, baseDir string, useFileRef bool) error {
	img := g.find("image")
	if img == nil {
		return nil
	}
	href, ok := img.attr("href")
	if !ok {
		return nil
	}

	abs := href
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(baseDir, href)
	}

	var newHref string
	if useFileRef {
		newHref = "file://" + abs
	} else {
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("read poll image %q: %w", abs, err)
		}
		newHref = fmt.Sprintf("data:%s;base64,%s", xmlutil.MimeType(abs), base64.StdEncoding.EncodeToString(data))
	}

	img.setXlinkHref(newHref)
	img.ensureXlinkNS()
	return nil
}
