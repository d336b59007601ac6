package drs

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// RootDataDirKey is the metadata key under which the inverse operation
// reports everything before the templated part of a directory.
const RootDataDirKey = "root_data_dir"

// Substituted values may only contain these characters, which keeps the
// capturing pattern simple.
const captureChars = "[a-zA-Z0-9-]+"

var regexpCache sync.Map // directory template -> *regexp.Regexp

// ExtractMetadataFromPath extracts metadata from the directory part of
// a file path. The path must not include the filename. Optional
// components in the directory template are not supported; the forward
// and inverse operations are deliberately asymmetric there.
func (d *DataReferenceSyntax) ExtractMetadataFromPath(directory string) (map[string]string, error) {
	re, err := d.directoryCaptureRegexp()
	if err != nil {
		return nil, err
	}

	match := re.FindStringSubmatch(directory)
	if match == nil {
		return nil, ErrPathMismatch.Msg(
			"directory " + directory + " does not match template " + d.DirectoryPathTemplate +
				" (example: " + d.DirectoryPathExample + ")")
	}

	res := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || name == RootDataDirKey {
			continue
		}
		res[name] = match[i]
	}
	return res, nil
}

// directoryCaptureRegexp builds (and caches) the regular expression
// that captures metadata from a directory, with one named group per
// placeholder and a leading group for the root data directory.
func (d *DataReferenceSyntax) directoryCaptureRegexp() (*regexp.Regexp, error) {
	if cached, ok := regexpCache.Load(d.DirectoryPathTemplate); ok {
		return cached.(*regexp.Regexp), nil
	}

	subs, err := ParseTemplate(d.DirectoryPathTemplate)
	if err != nil {
		return nil, err
	}

	capturing := d.DirectoryPathTemplate
	for _, s := range subs {
		if s.Optional {
			return nil, ErrOptionalNotSupported.Msg(
				"directory template " + d.DirectoryPathTemplate + " has an optional section")
		}
		group := strings.ReplaceAll(s.ReplacementString, "{", "(?P<")
		group = strings.ReplaceAll(group, "}", ">"+captureChars+")")
		capturing = strings.Replace(capturing, s.StringToReplace, group, 1)
	}

	sep := regexp.QuoteMeta(string(filepath.Separator))
	capturing = strings.ReplaceAll(capturing, "/", sep)
	capturing = "^(?P<" + RootDataDirKey + ">.*)" + sep + capturing + "$"

	re, err := regexp.Compile(capturing)
	if err != nil {
		return nil, ErrTemplateParse.MsgErr(
			"could not compile capturing expression for "+d.DirectoryPathTemplate, err)
	}
	regexpCache.Store(d.DirectoryPathTemplate, re)
	return re, nil
}
