package polytone

import "testing"

func TestBiomeIdMapperPut_FirstWriteWins(t *testing.T) {
	m := NewBiomeIdMapper("ardabiomes", "biome_id_mappers/ardabiomes.json", Standalone())

	m.Put("minecraft:plains", 1)
	m.Put("minecraft:plains", 9)
	m.Put("minecraft:desert", 2)

	if got := m.Mappings["minecraft:plains"]; got != 1 {
		t.Errorf("duplicate key should keep first value, got %d", got)
	}
	if got := m.Mappings["minecraft:desert"]; got != 2 {
		t.Errorf("expected desert -> 2, got %d", got)
	}
}

func TestEmptyMapper(t *testing.T) {
	if !EmptyMapper.IsEmpty() {
		t.Error("EmptyMapper should report empty")
	}
	var nilMapper *BiomeIdMapper
	if !nilMapper.IsEmpty() {
		t.Error("nil mapper should report empty")
	}
}

func TestParseAxisMapping(t *testing.T) {
	if ParseAxisMapping("biome_id") != AxisBiomeID {
		t.Error(`"biome_id" should parse as AxisBiomeID`)
	}
	if ParseAxisMapping("temperature") != AxisFunction {
		t.Error("arbitrary expressions should parse as AxisFunction")
	}
	if ParseAxisMapping("") != AxisFunction {
		t.Error("unset axis should default to AxisFunction")
	}
}
