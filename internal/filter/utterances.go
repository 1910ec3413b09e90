package filter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultUtterances are example phrasings of defect-bearing passages in
// expertise reports. Pages semantically close to any of these are candidates
// for defect extraction.
var DefaultUtterances = []string{
	"выявлены дефекты отделочных работ",
	"обнаружены недостатки при осмотре помещения",
	"отклонение поверхности стен от вертикали превышает допустимое",
	"трещины и сколы на поверхности плитки",
	"зазоры в местах примыкания конструкций",
	"неравномерность окраски и подтеки краски",
	"нарушение требований СНиП и ГОСТ при производстве работ",
	"отслоение обоев в местах стыков полотен",
	"перепады уровня пола превышают нормативные значения",
	"отсутствует регулировка дверных блоков и фурнитуры",
	"провисание натяжного потолка и зазоры у плинтуса",
	"протечки и неисправность сантехнических приборов",
}

type utterancesFile struct {
	Utterances []string `yaml:"utterances"`
}

// LoadUtterances reads the utterance set from a YAML file
// (`utterances: [...]`). An empty path yields the built-in defaults.
func LoadUtterances(path string) ([]string, error) {
	if path == "" {
		return DefaultUtterances, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utterances file: %w", err)
	}
	var parsed utterancesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse utterances file: %w", err)
	}
	if len(parsed.Utterances) == 0 {
		return nil, fmt.Errorf("utterances file %s contains no utterances", path)
	}
	return parsed.Utterances, nil
}
