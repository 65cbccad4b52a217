/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/valpere/interpeval/internal/interpreter"
	"github.com/valpere/interpeval/internal/provider"
)

// buildProvider constructs a generation backend by name. API keys and base
// URLs come from the viper configuration (config file or INTERPEVAL_* env).
func buildProvider(name, model string) (provider.Provider, error) {
	switch name {
	case "openai":
		return provider.NewOpenAI(viper.GetString("openai_api_key"), model), nil
	case "openrouter":
		return provider.NewOpenRouter(viper.GetString("openrouter_api_key"), viper.GetString("openrouter_base_url"), model), nil
	case "googleai":
		return provider.NewGoogleAI(viper.GetString("google_api_key"), model), nil
	case "vllm":
		baseURL := viper.GetString("vllm_base_url")
		if baseURL == "" {
			baseURL = "http://localhost:8000"
		}
		return provider.NewVLLM(baseURL, model, viper.GetString("vllm_api_key")), nil
	case "friendli":
		return provider.NewFriendli(viper.GetString("friendli_token"), model), nil
	case "ollama":
		return provider.NewOllama(viper.GetString("ollama_base_url"), model), nil
	}
	return nil, fmt.Errorf("unknown provider: %s", name)
}

// buildInterpreter constructs the mediating interpreter: either the
// machine-translation baseline or an LLM agent on a named provider.
func buildInterpreter(name, model, brief, sourceLang, targetLang string) (interpreter.Interpreter, error) {
	if name == "googletranslate" {
		return interpreter.NewGoogleTranslate(viper.GetString("google_credentials")), nil
	}

	p, err := buildProvider(name, model)
	if err != nil {
		return nil, err
	}
	return interpreter.NewAgent(p, interpreter.AgentConfig{
		Brief:          brief,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	}), nil
}
