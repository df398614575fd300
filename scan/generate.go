package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Deploy modes whose output path and system references are rewritten per
// generated variant.
var deployModes = []string{"pd-split-request-optimal", "pd-fusion"}

// sysParamPrefixes identify param paths that live in the system config
// rather than the runtime config.
var sysParamPrefixes = []string{"sys_list", "networks", "mem", "matrix", "vector"}

// Generate emits one runtime (and, for system params, one system) config
// variant per sweep value plus a shell script running them all. It returns
// the generated run commands in order.
func Generate(cfg *Config) ([]string, error) {
	sc := cfg.Scan
	paramName := ParamName(sc.ParamPath)
	runtimePrefix := strings.TrimSuffix(filepath.Base(sc.BaseRuntimeConfig), filepath.Ext(sc.BaseRuntimeConfig))

	baseRuntime, err := readJSON(sc.BaseRuntimeConfig)
	if err != nil {
		return nil, err
	}
	baseSys, err := readJSON(sc.BaseSysConfig)
	if err != nil {
		return nil, err
	}
	originalSysName, _ := baseSys["name"].(string)
	if originalSysName == "" {
		originalSysName = "System"
	}

	configSubdir := filepath.Join(sc.GeneratedConfigsDir, runtimePrefix)
	resultsBase := filepath.Join(sc.OutputDir, runtimePrefix)
	for _, dir := range []string{configSubdir, resultsBase} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	values, err := TestValues(sc.ParamMode)
	if err != nil {
		return nil, err
	}
	logrus.Infof("generating %d sweep variants for %s", len(values), sc.ParamPath)

	isSysParam := false
	for _, prefix := range sysParamPrefixes {
		if strings.HasPrefix(sc.ParamPath, prefix) {
			isSysParam = true
			break
		}
	}

	command := cfg.Run.Command
	if command == "" {
		command = "benchgrid run -c"
	}

	var commands []string
	for _, val := range values {
		runtime := deepCopy(baseRuntime)
		valueStr := FormatValueForFilename(val)

		resultDir := filepath.Join(resultsBase, fmt.Sprintf("config_%s_%s", paramName, valueStr))
		if err := os.MkdirAll(resultDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", resultDir, err)
		}
		for _, mode := range deployModes {
			if section, ok := runtime[mode].(map[string]any); ok {
				section["output"] = resultDir
			}
		}

		if isSysParam {
			sys := deepCopy(baseSys)
			if err := SetParam(sys, sc.ParamPath, val); err != nil {
				logrus.Warnf("cannot set %s in system config: %v", sc.ParamPath, err)
			} else {
				sys["name"] = fmt.Sprintf("%s_%s_%s", originalSysName, paramName, valueStr)
				sysPath := filepath.Join(configSubdir,
					fmt.Sprintf("sys_%s_%s_%s", paramName, valueStr, filepath.Base(sc.BaseSysConfig)))
				if err := writeJSON(sysPath, sys); err != nil {
					return nil, err
				}
				rewriteSysReferences(runtime, sc.BaseSysConfig, sysPath)
			}
		} else {
			if err := SetParam(runtime, sc.ParamPath, val); err != nil {
				return nil, fmt.Errorf("cannot set %s in runtime config: %w", sc.ParamPath, err)
			}
		}

		runtimePath := filepath.Join(configSubdir, fmt.Sprintf("runtime_%s_%s.json", paramName, valueStr))
		if err := writeJSON(runtimePath, runtime); err != nil {
			return nil, err
		}
		commands = append(commands, command+" "+runtimePath)
		logrus.Debugf("generated %s", filepath.Base(runtimePath))
	}

	if err := writeCommands(sc.CommandsFile, runtimePrefix, sc.ParamPath, commands); err != nil {
		return nil, err
	}
	logrus.Infof("wrote %d commands to %s", len(commands), sc.CommandsFile)
	return commands, nil
}

// rewriteSysReferences repoints sys_list entries (flat or nested one level)
// from the base system config to the generated variant.
func rewriteSysReferences(runtime map[string]any, oldPath, newPath string) {
	for _, mode := range deployModes {
		section, ok := runtime[mode].(map[string]any)
		if !ok {
			continue
		}
		list, ok := section["sys_list"].([]any)
		if !ok {
			continue
		}
		for i, item := range list {
			switch entry := item.(type) {
			case []any:
				for j, nested := range entry {
					if nested == oldPath {
						entry[j] = newPath
					}
				}
			default:
				if item == oldPath {
					list[i] = newPath
				}
			}
		}
	}
}

func writeCommands(path, runtimePrefix, paramPath string, commands []string) error {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "# Runtime: %s\n", runtimePrefix)
	fmt.Fprintf(&b, "# Param: %s\n", paramPath)
	fmt.Fprintf(&b, "# %d runs\n\n", len(commands))
	for _, cmd := range commands {
		b.WriteString(cmd + "\n")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return fmt.Errorf("writing commands file %s: %w", path, err)
	}
	return nil
}

func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}

func writeJSON(path string, v map[string]any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func deepCopy(m map[string]any) map[string]any {
	data, err := json.Marshal(m)
	if err != nil {
		logrus.Panicf("deep copy marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		logrus.Panicf("deep copy unmarshal: %v", err)
	}
	return out
}
