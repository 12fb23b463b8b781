package disp

// ASTRITelescopeType has no timing information; the time gradient is not
// used as input for it.
const ASTRITelescopeType uint64 = 201511619

// Variable is one column expression handed to the trainer.
type Variable struct {
	Expression string
	Type       byte
}

// VariableSchema lists the input variables, the spectators (carried along,
// never used as input) and the target of a training.
type VariableSchema struct {
	Variables  []Variable
	Spectators []Variable
	Target     TargetVariable
}

var spectatorColumns = []string{
	"MCe0",
	"MCxoff",
	"MCyoff",
	"MCxcore",
	"MCycore",
	"MCrcore",
	"NImages",
}

func BuildSchema(telType uint64, target Target) VariableSchema {
	inputs := []string{"width", "length", "wol", "size"}
	if telType != ASTRITelescopeType {
		inputs = append(inputs, "tgrad_x*tgrad_x")
	}
	inputs = append(inputs, "asym", "loss", "dist", "fui")

	schema := VariableSchema{Target: target.Variable()}
	for _, expr := range inputs {
		schema.Variables = append(schema.Variables, Variable{Expression: expr, Type: 'F'})
	}
	for _, expr := range spectatorColumns {
		schema.Spectators = append(schema.Spectators, Variable{Expression: expr, Type: 'F'})
	}
	return schema
}

func (s VariableSchema) VariableNames() []string {
	return expressions(s.Variables)
}

func (s VariableSchema) SpectatorNames() []string {
	return expressions(s.Spectators)
}

func expressions(vars []Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Expression
	}
	return names
}
