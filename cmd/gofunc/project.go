package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// projectFileName is looked up in the directory of the source file.
const projectFileName = "gofun.toml"

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Build *tomlBuild `toml:"build"`
}

// tomlBuild represents the [build] table.
type tomlBuild struct {
	Output     string `toml:"output,omitempty"`
	DumpTokens bool   `toml:"dump-tokens"`
	DumpAST    bool   `toml:"dump-ast"`
}

func projectDir(srcPath string) string {
	if srcPath == "" {
		return "."
	}
	return filepath.Dir(srcPath)
}

// LoadProject reads gofun.toml from dir. A missing file is not an error; the
// returned project is nil.
func LoadProject(dir string) (*tomlProjectFile, error) {
	buff, err := os.ReadFile(filepath.Join(dir, projectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	proj := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, proj); err != nil {
		return nil, err
	}
	if proj.Build == nil {
		proj.Build = &tomlBuild{}
	}
	return proj, nil
}
