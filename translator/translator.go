package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use. Creation compiles the translator module and is slow, so it is
// done once and shared by every surface.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	if translatorErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", translatorErr)
	}
	return translator, nil
}

// Uniforms maps source uniform names to the names used in translated code.
type Uniforms map[string]string

// TranslateFragment translates WebGL2 fragment source into desktop GLSL 4.10
// and returns the code with its uniform name mapping.
func TranslateFragment(source string) (string, Uniforms, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", nil, err
	}
	fs, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	names := make(Uniforms, len(fs.Variables))
	for name, v := range fs.Variables {
		names[name] = v.MappedName
	}
	return fs.Code, names, nil
}

// Mapped returns the translated name for a source uniform, or "" when the
// translator dropped it (unused uniforms are optimised out).
func (u Uniforms) Mapped(name string) string {
	return u[name]
}
