package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

const maxBodyBytes = 1 << 20

// Response messages.
const (
	MsgInvalidData        = "Dados inválidos"
	MsgMalformedJSON      = "JSON inválido"
	MsgReminderCreated    = "Lembrete cadastrado com sucesso"
	MsgReminderCreateFail = "Erro ao cadastrar lembrete"
	MsgReminderDeleted    = "Lembrete deletado com sucesso"
	MsgReminderDeleteFail = "Erro ao deletar lembrete"
	MsgReminderListFail   = "Erro ao buscar lembretes"
	MsgLoginOK            = "Login realizado com sucesso"
	MsgLoginRejected      = "E-mail ou senha inválidos"
	MsgLoginFail          = "Erro ao realizar login"
	MsgUserCreated        = "Usuário cadastrado com sucesso"
	MsgUserDuplicate      = "E-mail já cadastrado"
	MsgUserCreateFail     = "Erro ao cadastrar usuário"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Message string            `json:"message"`
	Code    common.Kind       `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidation(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{
		Message: MsgInvalidData,
		Code:    common.KindValidation,
		Fields:  errs,
	})
}

// writeFailure answers 400 for shape errors and 500 with the error kind for
// anything else. The cause itself never reaches the client.
func writeFailure(w http.ResponseWriter, err error, msg string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeValidation(w, verrs)
		return
	}
	writeJSON(w, http.StatusInternalServerError, ErrorBody{Message: msg, Code: common.KindOf(err)})
}

// decode reads a JSON body into v. On failure the 400 response is already
// written and false is returned.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeValidation(w, validation.Errors{typeErr.Field: validation.MsgInvalid})
			return false
		}
		writeJSON(w, http.StatusBadRequest, ErrorBody{Message: MsgMalformedJSON, Code: common.KindValidation})
		return false
	}
	return true
}
