package pcl

// PackBits appends src compressed with TIFF PackBits (PCL raster
// compression method 2) to dst.
func PackBits(dst, src []byte) []byte {
	for i := 0; i < len(src); {
		// run of identical bytes
		j := i + 1
		for j < len(src) && j-i < 128 && src[j] == src[i] {
			j++
		}
		if j-i >= 2 {
			dst = append(dst, byte(1-(j-i)), src[i])
			i = j
			continue
		}
		// literal bytes up to the next run of at least two
		j = i + 1
		for j < len(src) && j-i < 128 {
			if j+1 < len(src) && src[j] == src[j+1] {
				break
			}
			j++
		}
		dst = append(dst, byte(j-i-1))
		dst = append(dst, src[i:j]...)
		i = j
	}
	return dst
}
