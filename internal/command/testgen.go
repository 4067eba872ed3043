// internal/command/testgen.go
package command

import "strconv"

// GenerateTest builds the synthetic command behind "/t=<n>":
// READ Motor with n sub-entries, each asking for every standard field.
func GenerateTest(n int) Command {
	if n < 0 {
		n = 0
	}

	read := make(map[string]any, n)
	for i := 0; i < n; i++ {
		names := make([]any, len(FieldNames))
		for j, f := range FieldNames {
			names[j] = f
		}
		read["t"+strconv.Itoa(i)] = names
	}

	return Command{
		Action:  ActionRead,
		Kind:    KindMotor,
		Payload: ReadPayload(read),
	}
}
