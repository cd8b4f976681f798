// Package machine implements a small register machine and its assembler.
//
// The machine has 32 registers (R0-R31) holding values in -65535..65535, a
// 65536 cell data memory, and ten instructions:
//
//	MOV Rd imm        Rd = imm
//	RET Rs            halt, returning Rs
//	ADD Rd Rs1 Rs2    Rd = Rs1 + Rs2
//	SUB Rd Rs1 Rs2    Rd = Rs1 - Rs2
//	MUL Rd Rs1 Rs2    Rd = Rs1 * Rs2
//	DIV Rd Rs1 Rs2    Rd = Rs1 / Rs2
//	STR Rb off Rv     memory[Rb+off] = Rv
//	LDR Rd Rb off     Rd = memory[Rb+off]
//	JMP off           pc = pc + off
//	JZ Rc off         if Rc == 0, pc = pc + off
//
// Stores and loads outside of memory are ignored. A run ends with the value
// of the first RET executed, or with an error when a line fails to decode,
// control leaves the program, arithmetic leaves the register range, or the
// step limit is reached.
//
// The assembler accepts comments, equates, labels and compile-time
// expressions, and produces plain instruction lines for the machine.
package machine
