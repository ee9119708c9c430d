package errors

import "fmt"

// ProviderUnavailable creates an error for when the model provider is unreachable.
func ProviderUnavailable(cause error) *CadreError {
	return &CadreError{
		Category:  CategoryLLM,
		Code:      "provider_unavailable",
		Message:   "language model provider is unavailable",
		Retryable: true,
		Cause:     cause,
	}
}

// NoModelsAvailable creates an error for when the provider reports zero models.
// This is fatal for the current request and is not retried.
func NoModelsAvailable() *CadreError {
	return &CadreError{
		Category:  CategoryLLM,
		Code:      "no_models_available",
		Message:   "no language models are available - the assistant cannot respond right now",
		Retryable: false,
	}
}

// ModelRequestFailed creates an error for a failed provider round.
func ModelRequestFailed(cause error) *CadreError {
	return &CadreError{
		Category:  CategoryLLM,
		Code:      "model_request_failed",
		Message:   "model request failed",
		Retryable: true,
		Cause:     cause,
	}
}

// ToolNotFound creates an error for when a requested tool does not exist.
func ToolNotFound(name string) *CadreError {
	return &CadreError{
		Category:  CategoryTool,
		Code:      "tool_not_found",
		Message:   fmt.Sprintf("tool %q not found", name),
		Retryable: false,
	}
}

// ToolInvocationFailed creates an error for a failed knowledge-server tool call.
func ToolInvocationFailed(name string, cause error) *CadreError {
	return &CadreError{
		Category:  CategoryTool,
		Code:      "tool_invocation_failed",
		Message:   fmt.Sprintf("tool %q failed", name),
		Retryable: true,
		Cause:     cause,
	}
}

// PersonaNotFound creates an error for an unknown persona id.
func PersonaNotFound(id string) *CadreError {
	return &CadreError{
		Category:  CategoryPersona,
		Code:      "persona_not_found",
		Message:   fmt.Sprintf("persona %q not found", id),
		Retryable: false,
	}
}

// UnknownWorkflowType creates an error for a workflow type missing from the catalog.
func UnknownWorkflowType(workflowType string) *CadreError {
	return &CadreError{
		Category:  CategoryWorkflow,
		Code:      "unknown_workflow_type",
		Message:   fmt.Sprintf("unknown workflow type %q", workflowType),
		Retryable: false,
	}
}

// SessionNotFound creates an error for an unknown workflow session id.
func SessionNotFound(id string) *CadreError {
	return &CadreError{
		Category:  CategoryWorkflow,
		Code:      "session_not_found",
		Message:   fmt.Sprintf("workflow session %q not found", id),
		Retryable: false,
	}
}

// SessionActive creates an error for starting a workflow while another is active
// for the same persona context.
func SessionActive(contextKey string) *CadreError {
	return &CadreError{
		Category:  CategoryWorkflow,
		Code:      "session_active",
		Message:   fmt.Sprintf("a workflow is already active for %q - complete or abandon it first", contextKey),
		Retryable: false,
	}
}

// MaxRoundsReached creates an error for when the conversation loop hits its
// round bound with tool calls still pending.
func MaxRoundsReached(rounds int) *CadreError {
	return &CadreError{
		Category:  CategoryLoop,
		Code:      "max_rounds_reached",
		Message:   fmt.Sprintf("stopped after %d tool rounds without a final answer", rounds),
		Retryable: false,
	}
}

// MappingFetchFailed creates an error for a failed annotation-mapping refresh.
func MappingFetchFailed(cause error) *CadreError {
	return &CadreError{
		Category:  CategoryAnnotate,
		Code:      "mapping_fetch_failed",
		Message:   "could not refresh annotation mappings",
		Retryable: true,
		Cause:     cause,
	}
}

// ConfigInvalid creates an error for malformed configuration.
func ConfigInvalid(cause error) *CadreError {
	return &CadreError{
		Category:  CategoryConfig,
		Code:      "config_invalid",
		Message:   "configuration is invalid",
		Retryable: false,
		Cause:     cause,
	}
}
