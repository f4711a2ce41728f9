package emitter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/hsmx/internal/emitter"
	"github.com/comalice/hsmx/internal/lexer"
	"github.com/comalice/hsmx/internal/model"
)

const cameraUML = `@startuml camera.png
title Canon

[*] --> Off

Off --> On : evtPWR / turn_on()
state Off : entry / Enter Low Power Mode
state Off : exit / Exit Low Power Mode

state On {
  [*] --> Shoot
  On --> Off : evtPWR
  state On : entry / Open Lens
  state On : exit / Close Lens

  state Shoot {
    Shoot --> Play : evtMODE
    state Shoot : evtRELEASE / CLICK!, save photo
  }
}
@enduml
`

func buildCamera(t *testing.T) *model.Hsm {
	t.Helper()
	blocks := lexer.Tokenize(cameraUML)
	hsms, warnings := model.Build(blocks)
	require.Empty(t, warnings)
	require.Len(t, hsms, 1)
	return hsms[0]
}

func TestRegistry_HasAllFourLanguages(t *testing.T) {
	reg := emitter.NewRegistry()
	for _, lang := range []string{"c", "c++", "python", "puml"} {
		_, ok := reg[lang]
		assert.True(t, ok, "registry missing language %q", lang)
	}
}

func TestCEmitter_GeneratesEventDefines(t *testing.T) {
	hsm := buildCamera(t)
	var buf strings.Builder
	err := emitter.NewRegistry()["c"].Emit(hsm, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "#define evtPWR")
	assert.Contains(t, out, "#define evtMODE")
	assert.Contains(t, out, "#define evtRELEASE")
	// init/entry/exit are reserved and must not get their own #define.
	assert.NotContains(t, out, "#define init")
	assert.NotContains(t, out, "#define entry")
	assert.NotContains(t, out, "#define exit")
}

func TestCEmitter_GeneratesStateObjectsAndHandlers(t *testing.T) {
	hsm := buildCamera(t)
	var buf strings.Builder
	require.NoError(t, emitter.NewRegistry()["c"].Emit(hsm, &buf))

	out := buf.String()
	assert.Contains(t, out, "HSM_STATE Canon_StateOff;")
	assert.Contains(t, out, "HSM_STATE Canon_StateShoot;")
	assert.Contains(t, out, "HSM_EVENT Canon_StateOff_Hndlr(HSM *This, HSM_EVENT event, void *param)")
	assert.Contains(t, out, "case HSME_ENTRY:")
	assert.Contains(t, out, "case HSME_EXIT:")
}

func TestCEmitter_TranslatesTransitionsAndParents(t *testing.T) {
	hsm := buildCamera(t)
	var buf strings.Builder
	require.NoError(t, emitter.NewRegistry()["c"].Emit(hsm, &buf))

	out := buf.String()
	assert.Contains(t, out, "HSM_Tran(This, &Canon_StateOn, 0, NULL);")
	assert.Contains(t, out, `HSM_STATE_Create(&Canon_StateShoot, "Shoot", Canon_StateShoot_Hndlr, &Canon_StateOn);`)
	assert.Contains(t, out, `HSM_STATE_Create(&Canon_StateOff, "Off", Canon_StateOff_Hndlr, NULL);`)
}

func TestCEmitter_InitUsesTopLevelInitialState(t *testing.T) {
	hsm := buildCamera(t)
	var buf strings.Builder
	require.NoError(t, emitter.NewRegistry()["c"].Emit(hsm, &buf))

	assert.Contains(t, buf.String(), "HSM_Create((HSM *)This, name, &Canon_StateOff);")
}

func TestStubEmitters_ReturnNotImplemented(t *testing.T) {
	hsm := buildCamera(t)
	reg := emitter.NewRegistry()
	for _, lang := range []string{"c++", "python", "puml"} {
		var buf strings.Builder
		err := reg[lang].Emit(hsm, &buf)
		require.Error(t, err)
		var nie *emitter.NotImplementedError
		assert.ErrorAs(t, err, &nie)
	}
}
