package cpu

// execute runs a decoded instruction. It handles incrementing and/or
// moving the program counter.
func (c *Chip8) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Kind {
	// 00E0: CLS
	case ClearScreen:
		c.screen.Clear()

	// 00EE: RET
	case Return:
		addr, err := c.stack.pop()
		if err != nil {
			return err
		}
		c.pc = addr
		return nil

	// 1nnn: JP addr
	case Jump:
		c.pc = ins.NNN
		return nil

	// 2nnn: CALL addr, the pushed address is the instruction after the call
	case Call:
		if err := c.stack.push(c.pc + 2); err != nil {
			return err
		}
		c.pc = ins.NNN
		return nil

	// 3xkk: SE Vx, byte
	case SkipEqualImmediate:
		c.skipIf(c.v[x] == ins.KK)

	// 4xkk: SNE Vx, byte
	case SkipNotEqualImmediate:
		c.skipIf(c.v[x] != ins.KK)

	// 5xy0: SE Vx, Vy
	case SkipEqualRegister:
		c.skipIf(c.v[x] == c.v[y])

	// 6xkk: LD Vx, byte
	case LoadImmediate:
		c.v[x] = ins.KK

	// 7xkk: ADD Vx, byte, wraps without touching VF
	case AddImmediate:
		c.v[x] += ins.KK

	// 8xy0: LD Vx, Vy
	case Move:
		c.v[x] = c.v[y]

	// 8xy1: OR Vx, Vy
	case Or:
		c.v[x] |= c.v[y]

	// 8xy2: AND Vx, Vy
	case And:
		c.v[x] &= c.v[y]

	// 8xy3: XOR Vx, Vy
	case Xor:
		c.v[x] ^= c.v[y]

	// 8xy4: ADD Vx, Vy, VF = carry
	case AddRegister:
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = byte(sum)
		c.v[0xf] = boolToByte(sum > 0xff)

	// 8xy5: SUB Vx, Vy, VF = NOT borrow
	case SubRegister:
		noBorrow := c.v[x] >= c.v[y]
		c.v[x] -= c.v[y]
		c.v[0xf] = boolToByte(noBorrow)

	// 8xy6: SHR Vx
	case ShiftRight:
		lowest := c.v[x] & 0x01
		c.v[x] >>= 1
		c.v[0xf] = lowest

	// 8xy7: SUBN Vx, Vy, Vx = Vy - Vx, VF = NOT borrow
	case SubReverse:
		noBorrow := c.v[y] >= c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.v[0xf] = boolToByte(noBorrow)

	// 8xyE: SHL Vx
	case ShiftLeft:
		highest := c.v[x] >> 7
		c.v[x] <<= 1
		c.v[0xf] = highest

	// 9xy0: SNE Vx, Vy
	case SkipNotEqualRegister:
		c.skipIf(c.v[x] != c.v[y])

	// Annn: LD I, addr
	case SetIndex:
		c.i = ins.NNN

	// Bnnn: JP V0, addr
	case JumpOffset:
		c.pc = ins.NNN + uint16(c.v[0])
		return nil

	// Cxkk: RND Vx, byte
	case Random:
		c.v[x] = c.random() & ins.KK

	// Dxyn: DRW Vx, Vy, nibble, VF = collision
	case Draw:
		sprite, err := c.memory.Slice(c.i, uint16(ins.N), "sprite read")
		if err != nil {
			return err
		}
		occluded := c.screen.Draw(sprite, c.v[x], c.v[y])
		c.v[0xf] = boolToByte(occluded)

	// Ex9E: SKP Vx
	case SkipKeyDown:
		c.skipIf(c.peripheral.IsKeyDown(KeyCode(c.v[x] & 0x0f)))

	// ExA1: SKNP Vx
	case SkipKeyUp:
		c.skipIf(!c.peripheral.IsKeyDown(KeyCode(c.v[x] & 0x0f)))

	// Fx07: LD Vx, DT
	case LoadDelay:
		c.v[x] = c.dt

	// Fx0A: LD Vx, K
	case WaitKey:
		key, ok := c.pressedKey()
		if !ok {
			// do NOT advance the program counter, the same
			// instruction runs again next cycle until a key is down.
			return nil
		}
		c.v[x] = byte(key)

	// Fx15: LD DT, Vx
	case SetDelay:
		c.dt = c.v[x]

	// Fx18: LD ST, Vx
	case SetSound:
		c.st = c.v[x]

	// Fx1E: ADD I, Vx
	case AddIndex:
		c.i += uint16(c.v[x])

	// Fx29: LD F, Vx
	case LoadFont:
		c.i = FontAddress + uint16(c.v[x])*glyphSize

	// Fx33: LD B, Vx, hundreds at I, tens at I+1, units at I+2
	case StoreBCD:
		digits, err := c.memory.Slice(c.i, 3, "BCD store")
		if err != nil {
			return err
		}
		value := c.v[x]
		digits[0] = value / 100
		digits[1] = value / 10 % 10
		digits[2] = value % 10

	// Fx55: LD [I], Vx
	case StoreRegisters:
		dst, err := c.memory.Slice(c.i, uint16(x)+1, "register store")
		if err != nil {
			return err
		}
		copy(dst, c.v[:x+1])

	// Fx65: LD Vx, [I]
	case LoadRegisters:
		src, err := c.memory.Slice(c.i, uint16(x)+1, "register load")
		if err != nil {
			return err
		}
		copy(c.v[:x+1], src)
	}

	c.pc += 2
	return nil
}

// skipIf advances the program counter past the next instruction when cond holds.
func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

// pressedKey returns the lowest numbered key that is down.
func (c *Chip8) pressedKey() (KeyCode, bool) {
	for key := Key0; key < KeyCount; key++ {
		if c.peripheral.IsKeyDown(key) {
			return key, true
		}
	}
	return 0, false
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
